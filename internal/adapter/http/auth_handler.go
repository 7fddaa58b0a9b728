package http

import (
	"net/http"

	"github.com/agrotech/farm-api/internal/app/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler expõe as operações de autenticação
type AuthHandler struct {
	auth   *auth.Service
	logger *zap.Logger
}

// NewAuthHandler cria um novo handler de autenticação
func NewAuthHandler(authService *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authService,
		logger: logger,
	}
}

// Login autentica por email e senha e responde com o token de acesso
func (h *AuthHandler) Login(c *gin.Context) {
	var creds auth.Credentials
	if !bindJSON(c, h.logger, &creds) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
