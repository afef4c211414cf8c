package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CastRepository interface {
	Create(ctx context.Context, member *entity.CastMember) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CastMember, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.CastMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type castRepository struct {
	db      database.PgxIface
	timeout time.Duration
	log     *zap.Logger
}

func NewCastRepository(db database.PgxIface, timeout time.Duration, log *zap.Logger) CastRepository {
	return &castRepository{
		db:      db,
		timeout: timeout,
		log:     log.With(zap.String("repository", "cast")),
	}
}

func (r *castRepository) Create(ctx context.Context, member *entity.CastMember) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO cast_members (id, movie_id, name, character, profile_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.MovieID,
		member.Name,
		member.Character,
		member.ProfilePath,
		member.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create cast member",
			zap.Error(err),
			zap.String("movie_id", member.MovieID.String()),
			zap.String("name", member.Name),
		)
		return fmt.Errorf("create cast member for movie %s: %w", member.MovieID, mapPgError(err))
	}

	return nil
}

func (r *castRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CastMember, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, movie_id, name, character, profile_path, created_at
		FROM cast_members
		WHERE id = $1
	`

	var member entity.CastMember
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.MovieID,
		&member.Name,
		&member.Character,
		&member.ProfilePath,
		&member.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cast member", zap.Error(err), zap.String("cast_id", id.String()))
		return nil, fmt.Errorf("find cast member %s: %w", id, err)
	}

	return &member, nil
}

func (r *castRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.CastMember, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, movie_id, name, character, profile_path, created_at
		FROM cast_members
		WHERE movie_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find cast by movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find cast of movie %s: %w", movieID, err)
	}
	defer rows.Close()

	cast := []*entity.CastMember{}
	for rows.Next() {
		var member entity.CastMember
		err := rows.Scan(
			&member.ID,
			&member.MovieID,
			&member.Name,
			&member.Character,
			&member.ProfilePath,
			&member.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cast row", zap.Error(err))
			return nil, fmt.Errorf("scan cast row: %w", err)
		}
		cast = append(cast, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cast rows: %w", err)
	}

	return cast, nil
}

func (r *castRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM cast_members WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete cast member", zap.Error(err), zap.String("cast_id", id.String()))
		return fmt.Errorf("delete cast member %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cast member %s: %w", id, ErrNotFound)
	}

	return nil
}
