package middleware

import (
	"net/http"
	"testing"

	"github.com/agrotech/farm-api/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecovery_PanicRespondeErroGenerico(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRecoveryMiddleware(testutils.TestLogger(t)).Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("estado inesperado")
	})

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/boom", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusInternalServerError)

	var body map[string]string
	testutils.ParseResponse(t, resp, &body)
	assert.Equal(t, "Erro interno do servidor", body["error"])
}
