package http

import (
	"net/http"

	"github.com/agrotech/farm-api/internal/app/crop"
	"github.com/agrotech/farm-api/internal/app/dashboard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CropHandler expõe as operações de culturas
type CropHandler struct {
	crops    *crop.Service
	overview *dashboard.Service
	logger   *zap.Logger
}

// NewCropHandler cria um novo handler de culturas
func NewCropHandler(crops *crop.Service, overview *dashboard.Service, logger *zap.Logger) *CropHandler {
	return &CropHandler{
		crops:    crops,
		overview: overview,
		logger:   logger,
	}
}

// CreateMany cadastra um lote de culturas. Todas as fazendas referenciadas
// precisam pertencer ao principal; nada é gravado em caso de falha.
func (h *CropHandler) CreateMany(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var dtos []crop.CreateCrop
	if !bindJSON(c, h.logger, &dtos) {
		return
	}

	created, err := h.crops.CreateMany(c.Request.Context(), *principal, dtos)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.overview.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

// ListByFarm retorna as culturas de uma fazenda do principal autenticado
func (h *CropHandler) ListByFarm(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	farmID, ok := pathID(c, h.logger, "farmId")
	if !ok {
		return
	}

	crops, err := h.crops.FindAllByFarm(c.Request.Context(), *principal, farmID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, crops)
}

// Get retorna uma cultura do principal autenticado
func (h *CropHandler) Get(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	found, err := h.crops.FindOne(c.Request.Context(), *principal, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// Update renomeia uma cultura
func (h *CropHandler) Update(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	var dto crop.UpdateCrop
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	updated, err := h.crops.Update(c.Request.Context(), *principal, id, dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.overview.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, updated)
}

// Remove exclui uma cultura
func (h *CropHandler) Remove(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	removed, err := h.crops.Remove(c.Request.Context(), *principal, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.overview.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, removed)
}
