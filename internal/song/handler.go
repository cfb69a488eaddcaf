// AngelaMos | 2026
// handler.go

package song

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/song", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/like", h.GetLike)
		r.Post("/like", h.ToggleLike)
		r.Post("/play", h.Play)
	})
}

type songRequest struct {
	SongID string `json:"songId"`
}

type likeResponse struct {
	Success bool `json:"success"`
	LikeState
}

type playResponse struct {
	Success   bool  `json:"success"`
	PlayCount int64 `json:"playCount"`
}

func (h *Handler) GetLike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	state, err := h.service.LikeState(r.Context(), userID, r.URL.Query().Get("songId"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, likeResponse{Success: true, LikeState: state})
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	state, err := h.service.ToggleLike(r.Context(), userID, req.SongID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, likeResponse{Success: true, LikeState: state})
}

func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	plays, err := h.service.Play(r.Context(), req.SongID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, playResponse{Success: true, PlayCount: plays})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "song")
	default:
		core.InternalServerError(w, err)
	}
}
