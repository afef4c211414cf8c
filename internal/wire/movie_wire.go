package wire

import (
	"movie-paradise/internal/adaptor"
	"movie-paradise/internal/data/repository"
	"movie-paradise/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - List movies (search, genre, pagination)
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/top-rated", movieHandler.GetTopRated)
	r.Get("/api/movies/new-releases", movieHandler.GetNewReleases)
	r.Get("/api/genres", movieHandler.GetGenres)

	// GET /api/movies/{id} - Movie details with cast and review stats
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Post("/api/admin/movies", movieHandler.CreateMovie)
	admin.Put("/api/admin/movies/{id}", movieHandler.UpdateMovie)
	admin.Delete("/api/admin/movies/{id}", movieHandler.DeleteMovie)
}
