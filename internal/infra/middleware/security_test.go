package middleware

import (
	"net/http"
	"testing"

	"github.com/agrotech/farm-api/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSecurityRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sec := NewSecurityMiddleware(testutils.TestLogger(t))
	router := gin.New()
	router.Use(sec.Headers(), sec.CORS())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func TestSecurityHeaders_AplicadosNaResposta(t *testing.T) {
	router := setupSecurityRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/ping", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	for name, value := range securityHeaders {
		assert.Equal(t, value, resp.Header().Get(name), "cabeçalho %s", name)
	}
}

func TestCORS_PreflightRespondeSemCorpo(t *testing.T) {
	router := setupSecurityRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodOptions, "/ping", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusNoContent)
	assert.Contains(t, resp.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, resp.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
