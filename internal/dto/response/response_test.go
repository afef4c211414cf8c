package response

import (
	"testing"

	"movie-paradise/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReviewStatsToResponse(t *testing.T) {
	assert.Equal(t, ReviewStatsResponse{}, ReviewStatsToResponse(nil))

	got := ReviewStatsToResponse(&entity.ReviewStats{AverageRating: 7.6666666, ReviewCount: 3})
	assert.Equal(t, 7.7, got.AverageRating)
	assert.Equal(t, int64(3), got.ReviewCount)
}

func TestReviewToResponse_AnonymousHasNoUserID(t *testing.T) {
	review := &entity.Review{MovieID: uuid.New(), Username: "anon", Rating: 5}
	assert.Nil(t, ReviewToResponse(review).UserID)

	userID := uuid.New()
	review.UserID = &userID
	if got := ReviewToResponse(review).UserID; assert.NotNil(t, got) {
		assert.Equal(t, userID.String(), *got)
	}
}

func TestMovieToResponse_NilGenres(t *testing.T) {
	resp := MovieToResponse(&entity.Movie{Title: "Untitled"})
	assert.NotNil(t, resp.Genres)
	assert.Empty(t, resp.Genres)
}

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse[MovieResponse](nil, 2, 10, 25)
	assert.NotNil(t, page.Data)
	assert.Equal(t, PaginationMeta{Total: 25, Page: 2, PerPage: 10, TotalPages: 3}, page.Pagination)
}
