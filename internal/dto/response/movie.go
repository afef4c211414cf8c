package response

import (
	"time"

	"movie-paradise/internal/data/entity"
)

type MovieResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Tagline       *string   `json:"tagline,omitempty"`
	Overview      string    `json:"overview"`
	PosterURL     string    `json:"poster_url"`
	BackgroundURL *string   `json:"background_url,omitempty"`
	TrailerURL    *string   `json:"trailer_url,omitempty"`
	DownloadURL   *string   `json:"download_url,omitempty"`
	Year          int       `json:"year"`
	Rating        *float64  `json:"rating"`
	Duration      string    `json:"duration"`
	Genres        []string  `json:"genres"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	Cast        []CastMemberResponse `json:"cast"`
	ReviewStats ReviewStatsResponse  `json:"review_stats"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	return MovieResponse{
		ID:            movie.ID.String(),
		Title:         movie.Title,
		Tagline:       movie.Tagline,
		Overview:      movie.Overview,
		PosterURL:     movie.PosterURL,
		BackgroundURL: movie.BackgroundURL,
		TrailerURL:    movie.TrailerURL,
		DownloadURL:   movie.DownloadURL,
		Year:          movie.Year,
		Rating:        movie.Rating,
		Duration:      movie.Duration,
		Genres:        genres,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = MovieToResponse(movie)
	}
	return out
}

func MovieToDetailResponse(movie *entity.Movie, cast []*entity.CastMember, stats *entity.ReviewStats) MovieDetailResponse {
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		Cast:          CastToResponse(cast),
		ReviewStats:   ReviewStatsToResponse(stats),
	}
}
