package response

import (
	"time"

	"movie-paradise/internal/data/entity"
)

type CastMemberResponse struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	Name        string    `json:"name"`
	Character   string    `json:"character"`
	ProfilePath *string   `json:"profile_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func CastMemberToResponse(member *entity.CastMember) CastMemberResponse {
	return CastMemberResponse{
		ID:          member.ID.String(),
		MovieID:     member.MovieID.String(),
		Name:        member.Name,
		Character:   member.Character,
		ProfilePath: member.ProfilePath,
		CreatedAt:   member.CreatedAt,
	}
}

func CastToResponse(cast []*entity.CastMember) []CastMemberResponse {
	out := make([]CastMemberResponse, len(cast))
	for i, member := range cast {
		out[i] = CastMemberToResponse(member)
	}
	return out
}
