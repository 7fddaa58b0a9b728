package http

import (
	"net/http"

	"github.com/agrotech/farm-api/internal/app/dashboard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler expõe o panorama agregado das fazendas
type DashboardHandler struct {
	dashboard *dashboard.Service
	logger    *zap.Logger
}

// NewDashboardHandler cria um novo handler de dashboard
func NewDashboardHandler(dashboardService *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboardService,
		logger:    logger,
	}
}

// Overview retorna total de fazendas, hectares, distribuição por estado,
// por cultura e uso do solo
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboard.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
