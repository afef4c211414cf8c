package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/dto/response"
	"movie-paradise/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CastService interface {
	GetMovieCast(ctx context.Context, movieID string) ([]response.CastMemberResponse, error)
	AddCastMember(ctx context.Context, movieID string, req *request.CastMemberRequest) (*response.CastMemberResponse, error)
	DeleteCastMember(ctx context.Context, castID string) error
}

type castService struct {
	repo  *repository.Repository
	cache *cache.TTL
	log   *zap.Logger
}

func NewCastService(repo *repository.Repository, moderation *cache.TTL, log *zap.Logger) CastService {
	return &castService{
		repo:  repo,
		cache: moderation,
		log:   log.With(zap.String("service", "cast")),
	}
}

func (s *castService) GetMovieCast(ctx context.Context, movieID string) ([]response.CastMemberResponse, error) {
	id, err := s.existingMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	cast, err := s.repo.Cast.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cast: %w", err)
	}

	return response.CastToResponse(cast), nil
}

func (s *castService) AddCastMember(ctx context.Context, movieID string, req *request.CastMemberRequest) (*response.CastMemberResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Add cast validation failed", zap.Error(err))
		return nil, err
	}

	id, err := s.existingMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	member := &entity.CastMember{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:     id,
		Name:        strings.TrimSpace(req.Name),
		Character:   strings.TrimSpace(req.Character),
		ProfilePath: trimmedPtr(req.ProfilePath),
	}

	if err := s.repo.Cast.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("add cast member: %w", fromRepo(err))
	}

	s.cache.InvalidatePrefix(dashboardKey)

	s.log.Info("Cast member added",
		zap.String("cast_id", member.ID.String()),
		zap.String("movie_id", movieID),
		zap.String("name", member.Name),
	)

	resp := response.CastMemberToResponse(member)
	return &resp, nil
}

func (s *castService) DeleteCastMember(ctx context.Context, castID string) error {
	id, err := parseID(castID, "cast")
	if err != nil {
		return err
	}

	if err := s.repo.Cast.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete cast member: %w", fromRepo(err))
	}

	s.cache.InvalidatePrefix(dashboardKey)

	s.log.Info("Cast member deleted", zap.String("cast_id", castID))
	return nil
}

func (s *castService) existingMovie(ctx context.Context, movieID string) (uuid.UUID, error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return uuid.Nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return uuid.Nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}

	return id, nil
}
