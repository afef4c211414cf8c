package adaptor

import (
	"movie-paradise/internal/usecase"
	"movie-paradise/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Movie  *MovieHandler
	Cast   *CastHandler
	Review *ReviewHandler
	Admin  *AdminHandler
	Upload *UploadHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Movie:  NewMovieHandler(service.Movie, log),
		Cast:   NewCastHandler(service.Cast, log),
		Review: NewReviewHandler(service.Review, config.Moderation.PollInterval, log),
		Admin:  NewAdminHandler(service.Admin, log),
		Upload: NewUploadHandler(service.Upload, log),
	}
}
