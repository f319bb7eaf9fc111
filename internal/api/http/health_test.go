package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_NoDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewHealthHandler("crimson-backend", "test", nil, nil)
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "crimson-backend", resp.Service)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, "disabled", resp.Cache)
}

func TestHealthCheck_AliasRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewHealthHandler("crimson-backend", "test", nil, nil)
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
