package http

import (
	"net/http"
	"strconv"

	"github.com/agrotech/farm-api/internal/app/user"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/infra/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler expõe as operações de contas de usuário
type UserHandler struct {
	users  *user.Service
	logger *zap.Logger
}

// NewUserHandler cria um novo handler de usuários
func NewUserHandler(users *user.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// Register cria uma nova conta. Rota pública: o primeiro usuário registrado
// vira administrador.
func (h *UserHandler) Register(c *gin.Context) {
	var dto user.CreateUser
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	view, err := h.users.Register(c.Request.Context(), dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Profile retorna a conta do principal autenticado com seus produtores
func (h *UserHandler) Profile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	profile, err := h.users.Profile(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update atualiza a conta do principal autenticado
func (h *UserHandler) Update(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var dto user.UpdateUser
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	view, err := h.users.Update(c.Request.Context(), principal.ID, dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// List retorna todos os usuários. Restrita a administradores.
func (h *UserHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	views, err := h.users.List(c.Request.Context(), *principal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Remove exclui um usuário e todos os seus dados. Restrita a administradores;
// a própria conta nunca pode ser excluída.
func (h *UserHandler) Remove(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	targetID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	view, err := h.users.Remove(c.Request.Context(), *principal, targetID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveOwn trata a exclusão da própria conta, que é sempre recusada
func (h *UserHandler) RemoveOwn(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	view, err := h.users.Remove(c.Request.Context(), *principal, principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

type toggleRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ToggleRole altera o papel de outro usuário. Restrita a administradores
// com flag de superusuário.
func (h *UserHandler) ToggleRole(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	targetID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	var req toggleRoleRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	view, err := h.users.ToggleRole(c.Request.Context(), *principal, targetID, model.Role(req.Role))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// requirePrincipal obtém o principal autenticado ou aborta com 401
func requirePrincipal(c *gin.Context) (*model.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
		return nil, false
	}
	return principal, true
}

// pathID extrai um identificador numérico do caminho da rota
func pathID(c *gin.Context, logger *zap.Logger, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		logger.Warn("identificador inválido", zap.String("param", name), zap.String("value", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return 0, false
	}
	return uint(id), true
}
