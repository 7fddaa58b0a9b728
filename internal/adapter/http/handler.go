package http

import (
	"github.com/agrotech/farm-api/internal/infra/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler agrega todos os handlers HTTP da API
type Handler struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Producers *ProducerHandler
	Farms     *FarmHandler
	Crops     *CropHandler
	Dashboard *DashboardHandler
	Health    *HealthChecker
	logger    *zap.Logger
}

// NewHandler cria o conjunto de handlers da API
func NewHandler(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	producerHandler *ProducerHandler,
	farmHandler *FarmHandler,
	cropHandler *CropHandler,
	dashboardHandler *DashboardHandler,
	health *HealthChecker,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Auth:      authHandler,
		Users:     userHandler,
		Producers: producerHandler,
		Farms:     farmHandler,
		Crops:     cropHandler,
		Dashboard: dashboardHandler,
		Health:    health,
		logger:    logger,
	}
}

// RegisterRoutes registra as rotas da API sob o caminho base configurado
func (h *Handler) RegisterRoutes(router *gin.Engine, mw *middleware.Middleware, basePath string) {
	api := router.Group(basePath)
	api.Use(mw.RateLimit())

	// Rotas públicas
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/users/create/accounts", h.Users.Register)

	// Rotas autenticadas
	authed := api.Group("")
	authed.Use(mw.Authenticate, mw.UserRateLimit())
	{
		authed.GET("/users/accounts", h.Users.Profile)
		authed.DELETE("/users/delete/accounts", h.Users.RemoveOwn)
		authed.PATCH("/users/update/accounts", h.Users.Update)

		producers := authed.Group("/producers")
		{
			producers.POST("/create", h.Producers.Create)
			producers.GET("/list", h.Producers.List)
			producers.GET("/:id", h.Producers.Get)
			producers.PUT("/update/:id", h.Producers.Update)
			producers.DELETE("/delete/:id", h.Producers.Remove)
		}

		farms := authed.Group("/farms")
		{
			farms.POST("/create", h.Farms.Create)
			farms.GET("/list", h.Farms.List)
			farms.GET("/:id", h.Farms.Get)
			farms.PUT("/update/:id", h.Farms.Update)
			farms.DELETE("/delete/:id", h.Farms.Remove)
		}

		crops := authed.Group("/crops")
		{
			crops.POST("/create", h.Crops.CreateMany)
			crops.GET("/by-farm/:farmId", h.Crops.ListByFarm)
			crops.GET("/:id", h.Crops.Get)
			crops.PUT("/:id", h.Crops.Update)
			crops.DELETE("/:id", h.Crops.Remove)
		}

		authed.GET("/dashboard/overview", h.Dashboard.Overview)
	}

	// Rotas administrativas
	admin := api.Group("/users")
	admin.Use(mw.Authenticate, mw.RequireAdmin)
	{
		admin.GET("", h.Users.List)
		admin.DELETE("/:id", h.Users.Remove)
		admin.PATCH("/:id/role", h.Users.ToggleRole)
	}

	// Health checks fora do caminho base
	router.GET("/health", h.Health.LivenessCheck)
	router.GET("/health/liveness", h.Health.LivenessCheck)
	router.GET("/health/readiness", h.Health.ReadinessCheck)
	router.GET("/health/detailed", h.Health.DetailedHealth)
}
