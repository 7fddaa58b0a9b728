package http

import (
	"errors"
	"net/http"

	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError traduz erros da camada de aplicação para respostas HTTP.
// Erros internos não expõem detalhes ao cliente, apenas ao log.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		logger.Error("erro não mapeado",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("erro interno",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "Erro interno do servidor"})
		return
	}

	c.JSON(status, gin.H{"error": appErr.Message})
}

// bindJSON decodifica o corpo da requisição e responde 400 em caso de falha
func bindJSON(c *gin.Context, logger *zap.Logger, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		logger.Warn("JSON inválido", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return false
	}
	return true
}
