package middleware

import (
	"time"

	"github.com/agrotech/farm-api/internal/app/auth"
	"github.com/agrotech/farm-api/internal/infra/metrics"
	"github.com/agrotech/farm-api/pkg/cache"
	"github.com/agrotech/farm-api/pkg/config"
	"github.com/agrotech/farm-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"net/http"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	authMiddleware      *AuthMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	requestIDMiddleware *RequestIDMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(cfg *config.Config, logger *zap.Logger, authService *auth.Service, apiMetrics *metrics.APIMetrics) *Middleware {
	var rateLimitMiddleware *RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClientWithConfig(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		}, logger)
		if err != nil {
			logger.Error("Erro ao conectar ao Redis para rate limiting, limitação desabilitada",
				zap.Error(err),
				zap.String("redis.address", cfg.Cache.Redis.Address))
		} else {
			limiter := ratelimit.NewRedisLimiter(redisClient, logger)
			rateLimitMiddleware = NewRateLimitMiddleware(limiter, apiMetrics, logger)
		}
	}

	return &Middleware{
		logger:              logger,
		authMiddleware:      NewAuthMiddleware(authService, logger),
		recoveryMiddleware:  NewRecoveryMiddleware(logger),
		securityMiddleware:  NewSecurityMiddleware(logger),
		requestIDMiddleware: NewRequestIDMiddleware(logger),
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

// SetMetricsMiddleware configura o middleware de métricas
func (m *Middleware) SetMetricsMiddleware(metricsMiddleware *MetricsMiddleware) {
	m.metricsMiddleware = metricsMiddleware
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// RequireAdmin middleware que exige papel de administrador
func (m *Middleware) RequireAdmin(c *gin.Context) {
	m.authMiddleware.RequireAdmin(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// RequestID middleware que atribui um identificador a cada requisição
func (m *Middleware) RequestID() gin.HandlerFunc {
	return m.requestIDMiddleware.Middleware()
}

// RateLimit retorna o middleware de rate limit por IP, se habilitado
func (m *Middleware) RateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware != nil {
		return m.rateLimitMiddleware.IPRateLimit()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// UserRateLimit retorna o middleware de rate limit por usuário, se habilitado
func (m *Middleware) UserRateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware != nil {
		return m.rateLimitMiddleware.UserRateLimit()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// IgnoreFavicon é um middleware que ignora requisições para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		fields := []zap.Field{
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP),
		}
		if requestID := c.Writer.Header().Get(requestIDHeader); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		m.logger.Info("request completed", fields...)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}
