package adaptor

import (
	"net/http"

	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/usecase"
	"movie-paradise/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CastHandler struct {
	service usecase.CastService
	log     *zap.Logger
}

func NewCastHandler(service usecase.CastService, log *zap.Logger) *CastHandler {
	return &CastHandler{
		service: service,
		log:     log.With(zap.String("handler", "cast")),
	}
}

// GetMovieCast handles GET /api/movies/{id}/cast
func (h *CastHandler) GetMovieCast(w http.ResponseWriter, r *http.Request) {
	cast, err := h.service.GetMovieCast(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie cast")
		return
	}

	utils.ResponseSuccess(w, "success", cast)
}

// AddCastMember handles POST /api/admin/movies/{id}/cast
func (h *CastHandler) AddCastMember(w http.ResponseWriter, r *http.Request) {
	var req request.CastMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	member, err := h.service.AddCastMember(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add cast member")
		return
	}

	utils.ResponseCreated(w, "Cast member added successfully", member)
}

// DeleteCastMember handles DELETE /api/admin/cast/{id}
func (h *CastHandler) DeleteCastMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCastMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete cast member")
		return
	}

	utils.ResponseSuccess(w, "Cast member deleted successfully", nil)
}
