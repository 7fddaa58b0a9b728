package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware converte pânicos dos handlers em respostas 500
type RecoveryMiddleware struct {
	logger *zap.Logger
}

// NewRecoveryMiddleware cria um novo middleware de recuperação
func NewRecoveryMiddleware(logger *zap.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
	}
}

// Recovery registra o pânico com os dados da requisição e responde com o
// mesmo corpo genérico dos demais erros internos
func (m *RecoveryMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.logPanic(c, r)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Erro interno do servidor",
				})
			}
		}()

		c.Next()
	}
}

func (m *RecoveryMiddleware) logPanic(c *gin.Context, r any) {
	m.logger.Error("pânico recuperado no handler",
		zap.Any("panic", r),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", c.Writer.Header().Get(requestIDHeader)),
		zap.ByteString("stack", debug.Stack()),
	)
}
