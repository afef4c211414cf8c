package usecase

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/dto/response"
	"movie-paradise/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const PresignExpiry = 15 * time.Minute

var (
	imageExtensions = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}

	unsafeKeyChars = regexp.MustCompile(`[^a-z0-9-]+`)
)

type UploadService interface {
	PresignImageUpload(ctx context.Context, req *request.PresignUploadRequest) (*response.PresignUploadResponse, error)
}

type uploadService struct {
	store storage.ObjectStorage
	log   *zap.Logger
	now   func() time.Time
}

func NewUploadService(store storage.ObjectStorage, log *zap.Logger) UploadService {
	return &uploadService{
		store: store,
		log:   log.With(zap.String("service", "upload")),
		now:   time.Now,
	}
}

func (s *uploadService) PresignImageUpload(ctx context.Context, req *request.PresignUploadRequest) (*response.PresignUploadResponse, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	key := ObjectKeyFor(req.Kind, req.Filename, req.ContentType)

	uploadURL, publicURL, err := s.store.PresignUpload(ctx, key, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	s.log.Info("Upload presigned", zap.String("key", key), zap.String("kind", req.Kind))

	return &response.PresignUploadResponse{
		Method:    "PUT",
		UploadURL: uploadURL,
		PublicURL: publicURL,
		Key:       key,
		ExpiresAt: s.now().Add(PresignExpiry),
	}, nil
}

// ObjectKeyFor builds "<kind>s/<slug>-<random><ext>" so repeated uploads never collide
func ObjectKeyFor(kind, filename, contentType string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	slug := strings.Trim(unsafeKeyChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if slug == "" {
		slug = "image"
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%ss/%s-%s%s", kind, slug, suffix, imageExtensions[contentType])
}
