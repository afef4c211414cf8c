package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-paradise/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_IsAdmin_FailsClosed(t *testing.T) {
	svc, store := newTestService(t)
	user := store.AddUser("boss@example.com", "x")
	store.GrantAdmin(user.ID)
	ctx := context.Background()

	assert.True(t, svc.Admin.IsAdmin(ctx, user.ID))
	assert.False(t, svc.Admin.IsAdmin(ctx, uuid.New()))

	store.AdminErr = errors.New("connection reset")
	assert.False(t, svc.Admin.IsAdmin(ctx, user.ID))
}

func TestAdminService_AddAdmin(t *testing.T) {
	svc, store := newTestService(t)
	byEmail := store.AddUser("critic@example.com", "x")
	byID := store.AddUser("editor@example.com", "x")
	ctx := context.Background()

	admin, err := svc.Admin.AddAdmin(ctx, &request.AddAdminRequest{Email: "Critic@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID.String(), admin.UserID)
	assert.Equal(t, "critic@example.com", admin.Email)

	_, err = svc.Admin.AddAdmin(ctx, &request.AddAdminRequest{UserID: byID.ID.String()})
	require.NoError(t, err)

	// granting twice is harmless
	_, err = svc.Admin.AddAdmin(ctx, &request.AddAdminRequest{UserID: byID.ID.String()})
	require.NoError(t, err)

	admins, err := svc.Admin.GetAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}

func TestAdminService_AddAdmin_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Admin.AddAdmin(ctx, &request.AddAdminRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Admin.AddAdmin(ctx, &request.AddAdminRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Admin.AddAdmin(ctx, &request.AddAdminRequest{UserID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_DashboardStats_Cached(t *testing.T) {
	svc, store := newTestService(t)
	movie := store.AddMovie("Heat", 1995, nil, "Crime")
	store.AddReview(movie.ID, "a", 8, true)
	store.AddReview(movie.ID, "b", 2, false)
	ctx := context.Background()

	stats, err := svc.Admin.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalMovies)
	assert.Equal(t, int64(1), stats.ApprovedReviews)
	assert.Equal(t, int64(1), stats.PendingReviews)

	_, err = svc.Admin.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Calls("Admin.GetDashboardStats"))
}

func TestCastService(t *testing.T) {
	svc, store := newTestService(t)
	movie := store.AddMovie("Heat", 1995, nil, "Crime")
	ctx := context.Background()

	member, err := svc.Cast.AddCastMember(ctx, movie.ID.String(), &request.CastMemberRequest{
		Name:      " Al Pacino ",
		Character: "Vincent Hanna",
	})
	require.NoError(t, err)
	assert.Equal(t, "Al Pacino", member.Name)

	_, err = svc.Cast.AddCastMember(ctx, movie.ID.String(), &request.CastMemberRequest{Name: "Robert De Niro", Character: "Neil McCauley"})
	require.NoError(t, err)

	cast, err := svc.Cast.GetMovieCast(ctx, movie.ID.String())
	require.NoError(t, err)
	require.Len(t, cast, 2)
	assert.Equal(t, "Al Pacino", cast[0].Name)

	require.NoError(t, svc.Cast.DeleteCastMember(ctx, member.ID))
	assert.ErrorIs(t, svc.Cast.DeleteCastMember(ctx, member.ID), ErrNotFound)

	_, err = svc.Cast.AddCastMember(ctx, uuid.NewString(), &request.CastMemberRequest{Name: "X", Character: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Cast.GetMovieCast(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCastService_AddCastMember_Validation(t *testing.T) {
	svc, store := newTestService(t)
	movie := store.AddMovie("Heat", 1995, nil, "Crime")

	_, err := svc.Cast.AddCastMember(context.Background(), movie.ID.String(), &request.CastMemberRequest{
		Name:        "  ",
		Character:   " ",
		ProfilePath: ptr("javascript:alert(1)"),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "character")
	assert.Contains(t, verr.Fields, "profile_path")
	assert.Zero(t, store.Calls("Cast.Create"))
}
