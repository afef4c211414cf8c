package repository

import (
	"time"

	"movie-paradise/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Admin   AdminRepository
	Movie   MovieRepository
	Cast    CastRepository
	Review  ReviewRepository
	Health  HealthRepository
}

// NewRepository wires every repository onto the same pool; queryTimeout bounds each statement
func NewRepository(db database.PgxIface, queryTimeout time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, queryTimeout, log),
		Session: NewSessionRepository(db, queryTimeout, log),
		Admin:   NewAdminRepository(db, queryTimeout, log),
		Movie:   NewMovieRepository(db, queryTimeout, log),
		Cast:    NewCastRepository(db, queryTimeout, log),
		Review:  NewReviewRepository(db, queryTimeout, log),
		Health:  NewHealthRepository(db),
	}
}
