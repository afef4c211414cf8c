package response

import (
	"math"
	"time"

	"movie-paradise/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	UserID     *string   `json:"user_id,omitempty"`
	Username   string    `json:"username"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewStatsResponse struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:         review.ID.String(),
		MovieID:    review.MovieID.String(),
		MovieTitle: review.MovieTitle,
		Username:   review.Username,
		Rating:     review.Rating,
		Comment:    review.Comment,
		IsApproved: review.IsApproved,
		CreatedAt:  review.CreatedAt,
	}

	if review.UserID != nil {
		userID := review.UserID.String()
		resp.UserID = &userID
	}

	return resp
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}

// ReviewStatsToResponse rounds the average to one decimal, the precision ratings are shown with
func ReviewStatsToResponse(stats *entity.ReviewStats) ReviewStatsResponse {
	if stats == nil {
		return ReviewStatsResponse{}
	}
	return ReviewStatsResponse{
		AverageRating: math.Round(stats.AverageRating*10) / 10,
		ReviewCount:   stats.ReviewCount,
	}
}
