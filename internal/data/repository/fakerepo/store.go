// Package fakerepo keeps every repository in memory so services and routes can be tested without Postgres.
package fakerepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"

	"github.com/google/uuid"
)

// Store backs all fake repositories with shared tables, so joins and cascades behave like the database
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	sessions map[uuid.UUID]*entity.Session // keyed by token
	admins   map[uuid.UUID]time.Time
	movies   map[uuid.UUID]*entity.Movie
	cast     []*entity.CastMember
	reviews  map[uuid.UUID]*entity.Review
	calls    map[string]int

	// Err, when set, is returned by every method
	Err error
	// AdminErr is returned by IsAdmin only
	AdminErr error
	// Now drives session expiry
	Now func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[uuid.UUID]*entity.Session),
		admins:   make(map[uuid.UUID]time.Time),
		movies:   make(map[uuid.UUID]*entity.Movie),
		reviews:  make(map[uuid.UUID]*entity.Review),
		calls:    make(map[string]int),
		Now:      time.Now,
	}
}

var (
	_ repository.UserRepository    = (*userRepo)(nil)
	_ repository.SessionRepository = (*sessionRepo)(nil)
	_ repository.AdminRepository   = (*adminRepo)(nil)
	_ repository.MovieRepository   = (*movieRepo)(nil)
	_ repository.CastRepository    = (*castRepo)(nil)
	_ repository.ReviewRepository  = (*reviewRepo)(nil)
	_ repository.HealthRepository  = (*healthRepo)(nil)
)

// Repository exposes the store through the repository interfaces
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    (*userRepo)(s),
		Session: (*sessionRepo)(s),
		Admin:   (*adminRepo)(s),
		Movie:   (*movieRepo)(s),
		Cast:    (*castRepo)(s),
		Review:  (*reviewRepo)(s),
		Health:  (*healthRepo)(s),
	}
}

// Calls reports how many times a method such as "Review.SetApproval" ran
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// check records the call and returns the injected error; callers hold mu
func (s *Store) check(ctx context.Context, method string) error {
	s.calls[method]++
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Err
}

// ==================== SEED HELPERS ====================

func (s *Store) AddUser(email, passwordHash string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.users[user.ID] = user
	return clone(user)
}

func (s *Store) GrantAdmin(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[userID] = s.Now()
}

// AddSession stores a session valid for ttl and returns its token
func (s *Store) AddSession(userID uuid.UUID, ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     userID,
		Token:      uuid.New(),
		ExpiresAt:  now.Add(ttl),
	}
	s.sessions[session.Token] = session
	return session.Token.String()
}

func (s *Store) AddMovie(title string, year int, rating *float64, genres ...string) *entity.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	movie := &entity.Movie{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:     title,
		Overview:  title + " overview",
		PosterURL: "https://img.example.com/" + uuid.NewString() + ".jpg",
		Year:      year,
		Rating:    rating,
		Duration:  "2h",
		Genres:    append([]string{}, genres...),
	}
	s.movies[movie.ID] = movie
	return clone(movie)
}

func (s *Store) AddReview(movieID uuid.UUID, username string, rating int, approved bool) *entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	review := &entity.Review{
		// strictly increasing timestamps keep "newest first" deterministic
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.Now().Add(time.Duration(len(s.reviews)) * time.Millisecond)},
		MovieID:    movieID,
		Username:   username,
		Rating:     rating,
		IsApproved: approved,
	}
	s.reviews[review.ID] = review
	return clone(review)
}

// Review returns the stored row, bypassing call counting
func (s *Store) Review(id uuid.UUID) (*entity.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, false
	}
	return clone(review), true
}

func (s *Store) Session(token string) (*entity.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, false
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return clone(session), true
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

func notFound(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", what, id, repository.ErrNotFound)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

type healthRepo Store

func (r *healthRepo) Ping(ctx context.Context) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.check(ctx, "Health.Ping")
}
