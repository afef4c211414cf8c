package fakerepo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"

	"github.com/google/uuid"
)

type userRepo Store

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "User.Create"); err != nil {
		return err
	}

	email := strings.ToLower(user.Email)
	for _, u := range s.users {
		if u.Email == email {
			return fmt.Errorf("create user %s: %w", email, repository.ErrDuplicate)
		}
	}

	stored := clone(user)
	stored.Email = email
	s.users[user.ID] = stored
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "User.FindByID"); err != nil {
		return nil, err
	}

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return clone(user), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "User.FindByEmail"); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

type sessionRepo Store

func (r *sessionRepo) Create(ctx context.Context, session *entity.Session) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Session.Create"); err != nil {
		return err
	}

	if _, ok := s.users[session.UserID]; !ok {
		return fmt.Errorf("create session: %w", repository.ErrReference)
	}
	s.sessions[session.Token] = clone(session)
	return nil
}

func (r *sessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Session.FindValidSession"); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session, ok := s.sessions[id]
	if !ok || !session.Active(s.Now()) {
		return nil, nil
	}
	return clone(session), nil
}

func (r *sessionRepo) Revoke(ctx context.Context, token string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Session.Revoke"); err != nil {
		return err
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("session: %w", repository.ErrNotFound)
	}
	session, ok := s.sessions[id]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session: %w", repository.ErrNotFound)
	}
	now := s.Now()
	session.RevokedAt = &now
	return nil
}

func (r *sessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Session.RevokeAllUserSessions"); err != nil {
		return err
	}

	now := s.Now()
	for _, session := range s.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *sessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Session.CleanExpiredSessions"); err != nil {
		return 0, err
	}

	cutoff := s.Now().AddDate(0, 0, -7)
	var removed int64
	for token, session := range s.sessions {
		if session.ExpiresAt.Before(cutoff) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

type adminRepo Store

func (r *adminRepo) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Admin.IsAdmin"); err != nil {
		return false, err
	}

	if s.AdminErr != nil {
		return false, s.AdminErr
	}
	_, ok := s.admins[userID]
	return ok, nil
}

func (r *adminRepo) Add(ctx context.Context, userID uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Admin.Add"); err != nil {
		return err
	}

	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("add admin %s: %w", userID, repository.ErrReference)
	}
	if _, ok := s.admins[userID]; !ok {
		s.admins[userID] = s.Now()
	}
	return nil
}

func (r *adminRepo) FindAll(ctx context.Context) ([]*entity.AdminUser, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Admin.FindAll"); err != nil {
		return nil, err
	}

	admins := []*entity.AdminUser{}
	for id, createdAt := range s.admins {
		user, ok := s.users[id]
		if !ok {
			continue
		}
		admins = append(admins, &entity.AdminUser{
			BaseSimple: entity.BaseSimple{ID: id, CreatedAt: createdAt},
			Email:      user.Email,
		})
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].CreatedAt.Before(admins[j].CreatedAt) })
	return admins, nil
}

func (r *adminRepo) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Admin.GetDashboardStats"); err != nil {
		return nil, err
	}

	stats := &entity.DashboardStats{
		TotalMovies: int64(len(s.movies)),
		TotalCast:   int64(len(s.cast)),
	}
	for _, review := range s.reviews {
		if review.IsApproved {
			stats.ApprovedReviews++
		} else {
			stats.PendingReviews++
		}
	}
	return stats, nil
}
