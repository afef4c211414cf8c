package entity

type Movie struct {
	Base
	Title         string   `db:"title"`
	Tagline       *string  `db:"tagline"`
	Overview      string   `db:"overview"`
	PosterURL     string   `db:"poster_url"`
	BackgroundURL *string  `db:"background_url"`
	TrailerURL    *string  `db:"trailer_url"`
	DownloadURL   *string  `db:"download_url"`
	Year          int      `db:"year"`
	Rating        *float64 `db:"rating"`   // 0-10, nil when unrated
	Duration      string   `db:"duration"` // e.g. "2h 30m"
	Genres        []string `db:"genres"`
}

// MovieFilter narrows the public catalog listing
type MovieFilter struct {
	Search string
	Genre  string
}
