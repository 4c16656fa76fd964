package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/pkg/container"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.NewContainer(context.Background(), &config.Config{
		App: config.AppConfig{Environment: "development", Version: "test"},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			Path:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
			MaxRetries:  1,
			AutoMigrate: true,
		},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	return c
}

func TestHealth(t *testing.T) {
	router := SetupRouter(newTestContainer(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, map[string]string{"database": "healthy"}, body.Data.Checks)
}

func TestRoutes_Mounted(t *testing.T) {
	router := SetupRouter(newTestContainer(t))

	for _, path := range []string{"/api/v1/authors", "/api/v1/genres", "/api/v1/books", "/api/v1/books/search/title?title=x"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
