package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type userRepository struct {
	db      database.PgxIface
	timeout time.Duration
	log     *zap.Logger
}

func NewUserRepository(db database.PgxIface, timeout time.Duration, log *zap.Logger) UserRepository {
	return &userRepository{
		db:      db,
		timeout: timeout,
		log:     log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record, ErrDuplicate when the email is taken
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := database.WithTimeout(ctx, ur.timeout)
	defer cancel()

	query := `
		INSERT INTO users (id, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		err = mapPgError(err)
		if !errors.Is(err, ErrDuplicate) {
			ur.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("email", user.Email),
			)
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	ctx, cancel := database.WithTimeout(ctx, ur.timeout)
	defer cancel()

	query := `
		SELECT id, email, password, created_at, updated_at
		FROM users
		WHERE ` + where

	var user entity.User
	err := ur.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("where", where),
		)
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}
