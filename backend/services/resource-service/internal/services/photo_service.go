package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// MaxPhotoBytes caps a single submission photo.
const MaxPhotoBytes = 5 << 20

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
}

// ObjectStorage is the subset of the MinIO client the photo flow needs.
type ObjectStorage interface {
	UploadImage(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (key string, url string, err error)
	HealthCheck(ctx context.Context) error
}

type PhotoService interface {
	UploadPhoto(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

type photoService struct {
	store ObjectStorage
}

func NewPhotoService(store ObjectStorage) PhotoService {
	return &photoService{store: store}
}

// UploadPhoto stores an image and returns the URL a submission can reference.
func (s *photoService) UploadPhoto(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !allowedPhotoTypes[contentType] {
		return "", fmt.Errorf("%w: content type %q is not an accepted image type", utils.ErrValidationFailed, contentType)
	}
	if size <= 0 || size > MaxPhotoBytes {
		return "", fmt.Errorf("%w: photo size %d outside 1..%d bytes", utils.ErrValidationFailed, size, MaxPhotoBytes)
	}

	_, url, err := s.store.UploadImage(ctx, r, filename, contentType, size)
	if err != nil {
		return "", fmt.Errorf("%w: %w", utils.ErrUpstreamUnavailable, err)
	}
	return url, nil
}
