package http

import (
	"net/http"
	"strconv"

	"github.com/agrotech/farm-api/internal/app/dashboard"
	"github.com/agrotech/farm-api/internal/app/farm"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FarmHandler expõe as operações de fazendas
type FarmHandler struct {
	farms    *farm.Service
	overview *dashboard.Service
	logger   *zap.Logger
}

// NewFarmHandler cria um novo handler de fazendas
func NewFarmHandler(farms *farm.Service, overview *dashboard.Service, logger *zap.Logger) *FarmHandler {
	return &FarmHandler{
		farms:    farms,
		overview: overview,
		logger:   logger,
	}
}

// Create cadastra uma fazenda em um produtor do principal autenticado
func (h *FarmHandler) Create(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var dto farm.CreateFarm
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	created, err := h.farms.Create(c.Request.Context(), *principal, dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.overview.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

// List retorna as fazendas de um produtor, paginadas (10 por página,
// mais recentes primeiro). Requer o parâmetro producerId.
func (h *FarmHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	producerID, err := strconv.ParseUint(c.Query("producerId"), 10, 64)
	if err != nil || producerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro producerId é obrigatório"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	farms, err := h.farms.FindAll(c.Request.Context(), *principal, uint(producerID), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, farms)
}

// Get retorna uma fazenda do principal autenticado
func (h *FarmHandler) Get(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	found, err := h.farms.FindOne(c.Request.Context(), *principal, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// Update altera os dados de uma fazenda; as áreas são revalidadas
// contra os valores persistidos
func (h *FarmHandler) Update(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	var dto farm.UpdateFarm
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	updated, err := h.farms.Update(c.Request.Context(), *principal, id, dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.overview.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, updated)
}

// Remove exclui uma fazenda e suas culturas
func (h *FarmHandler) Remove(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	removed, err := h.farms.Remove(c.Request.Context(), *principal, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.overview.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, removed)
}
