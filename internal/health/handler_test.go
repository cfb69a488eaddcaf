// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error { return nil }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness_OptionalDependencySkipped(t *testing.T) {
	h := NewHandler(
		Dependency{Name: "database", Checker: pingFunc(ok)},
		Dependency{Name: "redis"},
	)

	rec := serve(h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var out ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Checks, 2)
	assert.Equal(t, "not configured", out.Checks[1].Message)
	assert.True(t, out.Checks[1].Healthy)
}

func TestReadiness_FailingDependency(t *testing.T) {
	h := NewHandler(Dependency{
		Name:    "database",
		Checker: pingFunc(func(context.Context) error { return errors.New("refused") }),
	})

	rec := serve(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
	assert.NotContains(t, rec.Body.String(), "refused")
}

func TestLiveness_Shutdown(t *testing.T) {
	h := NewHandler()

	assert.Equal(t, http.StatusOK, serve(h, "/healthz").Code)

	h.SetShutdown(true)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/livez").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/readyz").Code)
}
