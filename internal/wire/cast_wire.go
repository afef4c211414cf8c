package wire

import (
	"movie-paradise/internal/adaptor"
	"movie-paradise/internal/data/repository"
	"movie-paradise/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCast(
	r chi.Router,
	castHandler *adaptor.CastHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies/{id}/cast", castHandler.GetMovieCast)

	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Post("/api/admin/movies/{id}/cast", castHandler.AddCastMember)
	admin.Delete("/api/admin/cast/{id}", castHandler.DeleteCastMember)
}
