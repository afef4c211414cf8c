package repository

import (
	"context"
	"fmt"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminRepository interface {
	// IsAdmin calls the is_admin(uid) database function
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	// Add grants admin rights; granting twice is a no-op
	Add(ctx context.Context, userID uuid.UUID) error
	FindAll(ctx context.Context) ([]*entity.AdminUser, error)
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}

type adminRepository struct {
	db      database.PgxIface
	timeout time.Duration
	log     *zap.Logger
}

func NewAdminRepository(db database.PgxIface, timeout time.Duration, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:      db,
		timeout: timeout,
		log:     log.With(zap.String("repository", "admin")),
	}
}

func (r *adminRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var isAdmin bool
	if err := r.db.QueryRow(ctx, `SELECT is_admin($1)`, userID).Scan(&isAdmin); err != nil {
		r.log.Error("Failed to check admin",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("check admin %s: %w", userID, err)
	}

	return isAdmin, nil
}

func (r *adminRepository) Add(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO admin_users (id, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to add admin",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("add admin %s: %w", userID, mapPgError(err))
	}

	r.log.Info("Admin granted", zap.String("user_id", userID.String()))
	return nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]*entity.AdminUser, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT a.id, a.created_at, u.email
		FROM admin_users a
		JOIN users u ON u.id = a.id
		ORDER BY a.created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	admins := []*entity.AdminUser{}
	for rows.Next() {
		var admin entity.AdminUser
		if err := rows.Scan(&admin.ID, &admin.CreatedAt, &admin.Email); err != nil {
			r.log.Error("Failed to scan admin row", zap.Error(err))
			return nil, fmt.Errorf("scan admin row: %w", err)
		}
		admins = append(admins, &admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin rows: %w", err)
	}

	return admins, nil
}

// GetDashboardStats counts everything the admin dashboard shows in one round trip
func (r *adminRepository) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(*) FROM reviews WHERE is_approved = FALSE),
			(SELECT COUNT(*) FROM reviews WHERE is_approved = TRUE),
			(SELECT COUNT(*) FROM cast_members)
	`

	var stats entity.DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalMovies,
		&stats.PendingReviews,
		&stats.ApprovedReviews,
		&stats.TotalCast,
	)
	if err != nil {
		r.log.Error("Failed to get dashboard stats", zap.Error(err))
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}

	return &stats, nil
}
