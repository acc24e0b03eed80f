// README: Router wiring tests (routes, health, disabled usage).
package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/config"
	"voyage/internal/modules/itinerary"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := itinerary.NewService(nil, nil, itinerary.Options{})
	return NewRouter(RouterDeps{
		Itineraries: svc,
		AI:          config.AIConfig{ProviderOrder: []string{"openai", "gemini"}},
		CORSOrigins: []string{"*"},
	})
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_GenerateWithoutKeysReturnsMock(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/generate-itinerary",
		strings.NewReader(`{"travelers":"Couple","budget":5000,"vibe":["Relaxing"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, itinerary.ProviderMock, w.Header().Get("X-Itinerary-Provider"))
	assert.Contains(t, w.Body.String(), `"trip_title":"Romantic Bali Escape"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_UsageDisabledWithoutBackends(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_CheckEnv(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/check-env", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_openai_key":false`)
}

func TestServer_ShutdownBeforeServe(t *testing.T) {
	s := NewServer("127.0.0.1:0", http.NotFoundHandler(), 0)
	require.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, s.ListenAndServe())
}
