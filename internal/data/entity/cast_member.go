package entity

import "github.com/google/uuid"

type CastMember struct {
	BaseSimple
	MovieID     uuid.UUID `db:"movie_id"`
	Name        string    `db:"name"`
	Character   string    `db:"character"`
	ProfilePath *string   `db:"profile_path"`
}
