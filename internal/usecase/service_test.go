package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"movie-paradise/internal/data/repository/fakerepo"
	"movie-paradise/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Auth:       utils.AuthConfig{SessionTTL: time.Hour, AdminBootstrapEmail: "owner@movieparadise.app"},
		Moderation: utils.ModerationConfig{CacheTTL: time.Minute, PollInterval: 10 * time.Second},
	}
}

func newTestService(t *testing.T) (*Service, *fakerepo.Store) {
	t.Helper()
	store := fakerepo.New()
	return NewService(store.Repository(), nil, testConfig(), zap.NewNop()), store
}

// stubStorage records presigns and deletes
type stubStorage struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

const stubBase = "https://cdn.movieparadise.app/media/"

func (s *stubStorage) PresignUpload(_ context.Context, key string, _ time.Duration) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "https://minio.local/media/" + key + "?X-Amz-Signature=abc", stubBase + key, nil
}

func (s *stubStorage) ObjectKey(publicURL string) (string, bool) {
	key, ok := strings.CutPrefix(publicURL, stubBase)
	return key, ok && key != ""
}

func (s *stubStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func TestParseID(t *testing.T) {
	_, err := parseID("not-a-uuid", "movie")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "movie")
}

func TestValidationError_IsErrValidation(t *testing.T) {
	err := validate(&struct {
		Name string `json:"name" validate:"required"`
	}{})

	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	if assert.True(t, errors.As(err, &verr)) {
		assert.Equal(t, "This field is required", verr.Fields["name"])
	}
}

func TestRunMaintenance_StopsWithContext(t *testing.T) {
	svc, store := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunMaintenance(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return store.Calls("Session.CleanExpiredSessions") > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("maintenance loop did not stop")
	}
}
