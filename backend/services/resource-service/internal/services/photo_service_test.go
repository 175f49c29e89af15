package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

type fakeObjectStorage struct {
	uploaded    []string
	contentType string
	err         error
}

func (f *fakeObjectStorage) UploadImage(ctx context.Context, r io.Reader, filename, contentType string, size int64) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	body, _ := io.ReadAll(r)
	f.uploaded = append(f.uploaded, string(body))
	f.contentType = contentType
	return "submissions/k.jpg", "https://cdn.example.org/photos/submissions/k.jpg", nil
}

func (f *fakeObjectStorage) HealthCheck(ctx context.Context) error { return f.err }

func TestUploadPhoto(t *testing.T) {
	store := &fakeObjectStorage{}
	svc := NewPhotoService(store)

	url, err := svc.UploadPhoto(context.Background(), "fridge.jpg", "image/JPEG; charset=binary", 4, strings.NewReader("jpeg"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.org/photos/submissions/k.jpg", url)
	require.Equal(t, []string{"jpeg"}, store.uploaded)
	require.Equal(t, "image/jpeg", store.contentType)
}

func TestUploadPhoto_Rejects(t *testing.T) {
	svc := NewPhotoService(&fakeObjectStorage{})

	_, err := svc.UploadPhoto(context.Background(), "doc.pdf", "application/pdf", 10, strings.NewReader("pdf"))
	require.ErrorIs(t, err, utils.ErrValidationFailed)

	_, err = svc.UploadPhoto(context.Background(), "big.png", "image/png", MaxPhotoBytes+1, strings.NewReader(""))
	require.ErrorIs(t, err, utils.ErrValidationFailed)

	_, err = svc.UploadPhoto(context.Background(), "empty.png", "image/png", 0, strings.NewReader(""))
	require.ErrorIs(t, err, utils.ErrValidationFailed)
}

func TestUploadPhoto_StorageDown(t *testing.T) {
	svc := NewPhotoService(&fakeObjectStorage{err: errors.New("dial tcp: refused")})
	_, err := svc.UploadPhoto(context.Background(), "a.png", "image/png", 3, strings.NewReader("png"))
	require.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
}
