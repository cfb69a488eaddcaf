// AngelaMos | 2026
// handler.go

package album

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/album/find", h.Find)
}

type findResponse struct {
	Success bool    `json:"success"`
	Album   *Detail `json:"album"`
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	album, err := h.service.Find(r.Context(), r.URL.Query().Get("albumId"))
	if err != nil {
		switch {
		case core.IsAppError(err):
			core.JSONError(w, err)
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "album")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.JSON(w, http.StatusOK, findResponse{Success: true, Album: album})
}
