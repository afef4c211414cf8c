package entity

type AdminUser struct {
	BaseSimple
	Email string `db:"email"`
}

type DashboardStats struct {
	TotalMovies     int64
	PendingReviews  int64
	ApprovedReviews int64
	TotalCast       int64
}
