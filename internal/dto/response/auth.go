package response

import (
	"time"

	"movie-paradise/internal/data/entity"
)

type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	IsAdmin   bool      `json:"is_admin"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func AuthToResponse(user *entity.User, session *entity.Session, isAdmin bool) AuthResponse {
	resp := AuthResponse{
		UserID:  user.ID.String(),
		Email:   user.Email,
		IsAdmin: isAdmin,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

func ProfileToResponse(user *entity.User, isAdmin bool) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		IsAdmin:   isAdmin,
		CreatedAt: user.CreatedAt,
	}
}
