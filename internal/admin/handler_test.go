// AngelaMos | 2026
// handler_test.go

package admin

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

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type staticCount struct {
	n   int
	err error
}

func (s staticCount) Count(context.Context) (int, error) { return s.n, s.err }

func passthrough(next http.Handler) http.Handler { return next }

func forbid(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		core.Forbidden(w, "Forbidden: Admin access required")
	})
}

func TestGetSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBPing: func(context.Context) error { return nil },
		Counters: map[string]Counter{
			"songs":   staticCount{n: 40},
			"artists": staticCount{n: 7},
			"albums":  staticCount{err: errors.New("boom")},
		},
	})

	r := chi.NewRouter()
	h.RegisterRoutes(r, passthrough, passthrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	assert.True(t, out.Data.Database.Healthy)
	assert.Nil(t, out.Data.Redis)
	assert.NotEmpty(t, out.Data.Runtime.GoVersion)
	assert.Equal(t, []TableCount{
		{Name: "albums", Count: -1},
		{Name: "artists", Count: 7},
		{Name: "songs", Count: 40},
	}, out.Data.Catalog)
}

func TestGetSystemStats_Gated(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(HandlerConfig{}).RegisterRoutes(r, passthrough, forbid)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
