package repository

import (
	"context"
	"time"

	"movie-paradise/pkg/database"
)

type HealthRepository interface {
	Ping(ctx context.Context) error
}

type healthRepository struct {
	db database.PgxIface
}

func NewHealthRepository(db database.PgxIface) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) Ping(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.Ping(ctx)
}
