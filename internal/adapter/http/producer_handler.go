package http

import (
	"net/http"

	"github.com/agrotech/farm-api/internal/app/producer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProducerHandler expõe as operações de produtores rurais
type ProducerHandler struct {
	producers *producer.Service
	logger    *zap.Logger
}

// NewProducerHandler cria um novo handler de produtores
func NewProducerHandler(producers *producer.Service, logger *zap.Logger) *ProducerHandler {
	return &ProducerHandler{
		producers: producers,
		logger:    logger,
	}
}

// Create cadastra um produtor para o principal autenticado
func (h *ProducerHandler) Create(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var dto producer.CreateProducer
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	created, err := h.producers.Create(c.Request.Context(), *principal, dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List retorna os produtores do principal autenticado
func (h *ProducerHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	producers, err := h.producers.FindAll(c.Request.Context(), *principal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, producers)
}

// Get retorna um produtor do principal autenticado
func (h *ProducerHandler) Get(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	found, err := h.producers.FindOne(c.Request.Context(), *principal, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// Update altera os dados de um produtor do principal autenticado
func (h *ProducerHandler) Update(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	var dto producer.UpdateProducer
	if !bindJSON(c, h.logger, &dto) {
		return
	}

	updated, err := h.producers.Update(c.Request.Context(), *principal, id, dto)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Remove exclui um produtor sem fazendas associadas
func (h *ProducerHandler) Remove(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	result, err := h.producers.Remove(c.Request.Context(), *principal, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
