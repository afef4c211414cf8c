package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-paradise/internal/dto/request"
	"movie-paradise/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var browser = ClientInfo{UserAgent: "Mozilla/5.0", IPAddress: "203.0.113.7"}

func registerRequest(email string) *request.RegisterRequest {
	return &request.RegisterRequest{Email: email, Password: "secret123", ConfirmPassword: "secret123"}
}

func TestAuthService_Register(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Auth.Register(context.Background(), registerRequest("Fan@Example.com"), browser)
	require.NoError(t, err)

	assert.Equal(t, "fan@example.com", resp.Email)
	assert.False(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	session, ok := store.Session(resp.Token)
	require.True(t, ok)
	require.NotNil(t, session.UserAgent)
	assert.Equal(t, "Mozilla/5.0", *session.UserAgent)
	assert.Equal(t, "203.0.113.7", *session.IPAddress)
}

func TestAuthService_Register_Errors(t *testing.T) {
	svc, store := newTestService(t)
	store.AddUser("fan@example.com", "x")
	ctx := context.Background()

	_, err := svc.Auth.Register(ctx, registerRequest("FAN@example.com"), browser)
	assert.ErrorIs(t, err, ErrConflict)

	req := registerRequest("new@example.com")
	req.ConfirmPassword = "different"
	_, err = svc.Auth.Register(ctx, req, browser)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "confirm_password")
}

func TestAuthService_Register_BootstrapAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Auth.Register(context.Background(), registerRequest("Owner@MovieParadise.app"), browser)
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)

	userID := uuid.MustParse(resp.UserID)
	assert.True(t, svc.Admin.IsAdmin(context.Background(), userID))
}

func TestAuthService_Login(t *testing.T) {
	svc, store := newTestService(t)
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := store.AddUser("fan@example.com", hash)
	store.GrantAdmin(user.ID)
	ctx := context.Background()

	resp, err := svc.Auth.Login(ctx, &request.LoginRequest{Email: "Fan@Example.com", Password: "secret123"}, browser)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.True(t, resp.IsAdmin)

	_, err = svc.Auth.Login(ctx, &request.LoginRequest{Email: "fan@example.com", Password: "wrong-pass"}, browser)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Auth.Login(ctx, &request.LoginRequest{Email: "ghost@example.com", Password: "secret123"}, browser)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	svc, store := newTestService(t)
	user := store.AddUser("fan@example.com", "x")
	first := store.AddSession(user.ID, time.Hour)
	second := store.AddSession(user.ID, time.Hour)
	ctx := context.Background()
	repo := store.Repository()

	require.NoError(t, svc.Auth.Logout(ctx, first))
	session, err := repo.Session.FindValidSession(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, session)

	assert.ErrorIs(t, svc.Auth.Logout(ctx, first), ErrNotFound)

	require.NoError(t, svc.Auth.LogoutAll(ctx, user.ID))
	session, err = repo.Session.FindValidSession(ctx, second)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestUserService_GetProfile(t *testing.T) {
	svc, store := newTestService(t)
	user := store.AddUser("fan@example.com", "x")
	ctx := context.Background()

	profile, err := svc.User.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", profile.Email)
	assert.False(t, profile.IsAdmin)

	// admin lookup failure reports a plain user
	store.GrantAdmin(user.ID)
	store.AdminErr = errors.New("db down")
	profile, err = svc.User.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsAdmin)

	_, err = svc.User.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
