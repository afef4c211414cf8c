package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	MovieID    uuid.UUID  `db:"movie_id"`
	UserID     *uuid.UUID `db:"user_id"` // set when submitted with a session
	Username   string     `db:"username"`
	Rating     int        `db:"rating"` // 1-10
	Comment    *string    `db:"comment"`
	IsApproved bool       `db:"is_approved"`

	// MovieTitle is filled by the moderation listing join
	MovieTitle string `db:"movie_title"`
}

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusAll      ReviewStatus = "all"
)

// Approved maps the status onto the is_approved filter, nil meaning no filter
func (s ReviewStatus) Approved() *bool {
	var approved bool
	switch s {
	case ReviewStatusPending:
		approved = false
	case ReviewStatusApproved:
		approved = true
	default:
		return nil
	}
	return &approved
}

type ReviewStats struct {
	AverageRating float64
	ReviewCount   int64
}
