package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"movie-paradise/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestObjectKeyFor(t *testing.T) {
	tests := []struct {
		kind, filename, contentType string
		pattern                     string
	}{
		{"poster", "The Matrix (1999).JPG", "image/jpeg", `^posters/the-matrix-1999-[0-9a-f]{12}\.jpg$`},
		{"background", "../../etc/passwd", "image/png", `^backgrounds/passwd-[0-9a-f]{12}\.png$`},
		{"profile", "???.webp", "image/webp", `^profiles/image-[0-9a-f]{12}\.webp$`},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), ObjectKeyFor(tt.kind, tt.filename, tt.contentType))
		})
	}

	assert.NotEqual(t, ObjectKeyFor("poster", "a.jpg", "image/jpeg"), ObjectKeyFor("poster", "a.jpg", "image/jpeg"))
}

func TestUploadService_PresignImageUpload(t *testing.T) {
	objects := &stubStorage{}
	svc := NewUploadService(objects, zap.NewNop())

	resp, err := svc.PresignImageUpload(context.Background(), &request.PresignUploadRequest{
		Filename:    "poster.png",
		ContentType: "image/png",
		Kind:        "poster",
	})
	require.NoError(t, err)

	assert.Equal(t, "PUT", resp.Method)
	assert.True(t, strings.HasPrefix(resp.Key, "posters/poster-"))
	assert.Equal(t, stubBase+resp.Key, resp.PublicURL)
	assert.Contains(t, resp.UploadURL, resp.Key)

	_, err = svc.PresignImageUpload(context.Background(), &request.PresignUploadRequest{
		Filename:    "poster.gif",
		ContentType: "image/gif",
		Kind:        "poster",
	})
	assert.ErrorIs(t, err, ErrValidation)

	objects.err = errors.New("minio unreachable")
	_, err = svc.PresignImageUpload(context.Background(), &request.PresignUploadRequest{
		Filename:    "poster.png",
		ContentType: "image/png",
		Kind:        "poster",
	})
	assert.Error(t, err)
}

func TestUploadService_WithoutStorage(t *testing.T) {
	svc := NewUploadService(nil, zap.NewNop())

	_, err := svc.PresignImageUpload(context.Background(), &request.PresignUploadRequest{
		Filename:    "poster.png",
		ContentType: "image/png",
		Kind:        "poster",
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
