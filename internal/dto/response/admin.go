package response

import (
	"time"

	"movie-paradise/internal/data/entity"
)

type AdminUserResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStatsResponse struct {
	TotalMovies     int64 `json:"total_movies"`
	PendingReviews  int64 `json:"pending_reviews"`
	ApprovedReviews int64 `json:"approved_reviews"`
	TotalCast       int64 `json:"total_cast"`
}

func AdminUserToResponse(admin *entity.AdminUser) AdminUserResponse {
	return AdminUserResponse{
		UserID:    admin.ID.String(),
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
	}
}

func DashboardStatsToResponse(stats *entity.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalMovies:     stats.TotalMovies,
		PendingReviews:  stats.PendingReviews,
		ApprovedReviews: stats.ApprovedReviews,
		TotalCast:       stats.TotalCast,
	}
}
