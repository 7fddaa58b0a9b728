package app

import (
	"context"
	"fmt"
	"time"

	"github.com/agrotech/farm-api/internal/adapter/database"
	"github.com/agrotech/farm-api/internal/adapter/http"
	"github.com/agrotech/farm-api/internal/app/auth"
	"github.com/agrotech/farm-api/internal/app/authz"
	"github.com/agrotech/farm-api/internal/app/crop"
	"github.com/agrotech/farm-api/internal/app/dashboard"
	"github.com/agrotech/farm-api/internal/app/farm"
	"github.com/agrotech/farm-api/internal/app/producer"
	"github.com/agrotech/farm-api/internal/app/user"
	"github.com/agrotech/farm-api/internal/infra/metrics"
	"github.com/agrotech/farm-api/internal/infra/middleware"
	"github.com/agrotech/farm-api/pkg/cache"
	"github.com/agrotech/farm-api/pkg/config"
	"github.com/agrotech/farm-api/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	net2 "net/http"
)

// App reúne todas as dependências da aplicação
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *database.Database
	Handler    *http.Handler
	Middleware *middleware.Middleware
	Cache      cache.Cache
	APIMetrics *metrics.APIMetrics
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(logger *zap.Logger) (*App, error) {
	// Carregar a configuração do arquivo
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	// Configurações do banco de dados
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        database.ParseLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
	}

	// Inicializar banco de dados
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar métricas
	apiMetrics := metrics.NewAPIMetrics()

	// Inicializar cache conforme configuração
	appCache := newCache(cfg, apiMetrics, logger)

	// Inicializar repositórios
	userRepo := database.NewUserRepository(db.DB())
	producerRepo := database.NewProducerRepository(db.DB())
	farmRepo := database.NewFarmRepository(db.DB())
	cropRepo := database.NewCropRepository(db.DB())

	// Inicializar gerenciador de chaves JWT
	jwtSecret := security.GetJWTSecret()
	if jwtSecret == "" {
		jwtSecret = cfg.Auth.JWTSecret
	}
	keyManager, err := security.NewKeyManager(jwtSecret, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar serviços
	resolver := authz.NewResolver(producerRepo, farmRepo, logger)
	authService := auth.NewService(keyManager, userRepo, logger)
	userService := user.NewService(userRepo, producerRepo, farmRepo, cropRepo, logger)
	producerService := producer.NewService(producerRepo, farmRepo, logger)
	farmService := farm.NewService(farmRepo, producerRepo, cropRepo, resolver, logger)
	cropService := crop.NewService(cropRepo, resolver, logger)
	dashboardService := dashboard.NewService(farmRepo, cropRepo, appCache, cfg.Cache.TTL, logger)

	// Inicializar middleware com as métricas já criadas
	metricsMiddleware := middleware.NewMetricsMiddleware(apiMetrics, logger)
	middlewares := middleware.NewMiddleware(cfg, logger, authService, apiMetrics)
	middlewares.SetMetricsMiddleware(metricsMiddleware)

	// Inicializar handlers HTTP
	handler := http.NewHandler(
		http.NewAuthHandler(authService, logger),
		http.NewUserHandler(userService, logger),
		http.NewProducerHandler(producerService, logger),
		http.NewFarmHandler(farmService, dashboardService, logger),
		http.NewCropHandler(cropService, dashboardService, logger),
		http.NewDashboardHandler(dashboardService, logger),
		http.NewHealthChecker(db, appCache, logger),
		logger,
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Handler:    handler,
		Middleware: middlewares,
		Cache:      appCache,
		APIMetrics: apiMetrics,
	}, nil
}

// newCache escolhe o backend de cache conforme a configuração,
// com fallback para memória quando o Redis não está acessível
func newCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, logger *zap.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		return &cache.NoOpCache{}
	}

	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(
			cfg.Cache.Redis.Address,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			logger,
		)
		if err == nil {
			logger.Info("Cache Redis inicializado",
				zap.String("address", cfg.Cache.Redis.Address))
			return redisCache
		}
		logger.Error("Erro ao conectar ao Redis, usando cache em memória", zap.Error(err))
	}

	return cache.NewMemoryCache(5*time.Minute, 10*time.Minute, apiMetrics, logger)
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	// Middleware global
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.RequestID())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.Metrics())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.IgnoreFavicon())

	// Expor endpoint de métricas para Prometheus
	if a.Config.Metrics.Enabled {
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(promhttp.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	// Rotas da API
	a.Handler.RegisterRoutes(router, a.Middleware, a.Config.Server.BasePath)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(net2.StatusNotFound, gin.H{
			"error": "Rota não encontrada",
			"path":  c.Request.URL.Path,
		})
	})
}
