// AngelaMos | 2026
// handler.go

package artist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the artist endpoints. Listing requires a bearer
// token; search is public.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/artist", func(r chi.Router) {
		r.With(authenticator).Get("/", h.List)
		r.Get("/search", h.Search)
	})
}

type searchResponse struct {
	Success bool     `json:"success"`
	Artists []Detail `json:"artists"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", DefaultLimit),
	}
	params.Normalize()

	artists, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, artists, params.Page, params.Limit, total)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	artists, err := h.service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		switch {
		case core.IsAppError(err):
			core.JSONError(w, err)
		case errors.Is(err, core.ErrNotFound):
			core.JSONError(w, core.NotFoundError("No artists found"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.JSON(w, http.StatusOK, searchResponse{Success: true, Artists: artists})
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
