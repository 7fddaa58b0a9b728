package middleware

import (
	"github.com/agrotech/farm-api/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestIDHeader é o cabeçalho usado para propagar o identificador da requisição
const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware atribui um identificador único a cada requisição
type RequestIDMiddleware struct {
	logger *zap.Logger
}

// NewRequestIDMiddleware cria um novo middleware de identificação de requisições
func NewRequestIDMiddleware(logger *zap.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Middleware gera (ou propaga) o X-Request-ID e o injeta no contexto
func (m *RequestIDMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logging.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
