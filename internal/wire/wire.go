// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-paradise/internal/adaptor"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/usecase"
	"movie-paradise/pkg/middleware"
	"movie-paradise/pkg/storage"
	"movie-paradise/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router        *chi.Mux
	Service       *usecase.Service
	ReviewLimiter *middleware.RateLimiter
}

// Wiring menginisialisasi semua dependencies; store may be nil
func Wiring(repo *repository.Repository, store storage.ObjectStorage, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, store, config, logger)
	handler := adaptor.NewHandler(service, config, logger)
	limiter := middleware.NewRateLimiter(config.HTTP.ReviewRateLimit, config.HTTP.ReviewRateWindow)

	// Setup router
	router := setupRouter(handler, repo, limiter, config, logger)

	return &App{
		Router:        router,
		Service:       service,
		ReviewLimiter: limiter,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	if config.HTTP.TrustProxyHeaders {
		// only behind a proxy that overwrites these headers
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.AllowedOrigins))
	r.Use(middleware.MaxBodySize(config.HTTP.MaxBodyBytes))

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireMovie(r, handler.Movie, repo, config, logger)
	wireCast(r, handler.Cast, repo, config, logger)
	wireReview(r, handler.Review, repo, limiter, logger)
	wireAdmin(r, handler.Admin, handler.Upload, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := repo.Health.Ping(req.Context()); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "database unavailable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}

// adminOnly chains session auth and the is_admin check in front of a route
func adminOnly(r chi.Router, repo *repository.Repository, log *zap.Logger) chi.Router {
	return r.With(
		middleware.AuthSession(repo.Session, log), // Must be authenticated
		middleware.Admin(repo.Admin, log),         // Must be admin
	)
}
