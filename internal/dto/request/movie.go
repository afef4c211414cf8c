package request

// MovieRequest is the admin movie form, used for both create and full update
type MovieRequest struct {
	Title         string   `json:"title" validate:"required,notblank,max=200"`
	Tagline       *string  `json:"tagline,omitempty" validate:"omitempty,max=300"`
	Overview      string   `json:"overview" validate:"required,notblank,max=5000"`
	PosterURL     string   `json:"poster_url" validate:"required,http_url"`
	BackgroundURL *string  `json:"background_url,omitempty" validate:"omitempty,http_url"`
	TrailerURL    *string  `json:"trailer_url,omitempty" validate:"omitempty,http_url"`
	DownloadURL   *string  `json:"download_url,omitempty" validate:"omitempty,http_url"`
	Year          int      `json:"year" validate:"required,gte=1900,lte=2100"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Duration      string   `json:"duration" validate:"required,notblank,max=20"`
	Genres        []string `json:"genres" validate:"required,min=1,dive,max=50"`
}

type MovieListRequest struct {
	PaginatedRequest
	Search string `json:"search" validate:"max=200"`
	Genre  string `json:"genre" validate:"max=50"`
}
