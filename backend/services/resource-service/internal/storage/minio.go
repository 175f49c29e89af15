package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// MinIOStorage stores submission photos in an S3-compatible bucket.
type MinIOStorage struct {
	client         *minio.Client
	bucketName     string
	publicEndpoint string
	useSSL         bool
}

// NewMinIOStorage creates the client and makes sure the bucket exists with a
// public-read policy. An unreachable endpoint is logged, not fatal.
func NewMinIOStorage(ctx context.Context, endpoint, publicEndpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	if publicEndpoint == "" {
		publicEndpoint = endpoint
	}
	publicEndpoint = strings.TrimSuffix(strings.TrimSpace(publicEndpoint), "/")

	s := &MinIOStorage{
		client:         client,
		bucketName:     bucketName,
		publicEndpoint: publicEndpoint,
		useSSL:         useSSL,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to check bucket %s (will continue)", bucketName)
	} else if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to create bucket %s", bucketName)
		} else {
			utils.Logger.Infof("Bucket %s created", bucketName)
			policy := fmt.Sprintf(`{"Version": "2012-10-17","Statement": [{"Action": ["s3:GetObject"],"Effect": "Allow","Principal": {"AWS": ["*"]},"Resource": ["arn:aws:s3:::%s/*"],"Sid": ""}]}`, bucketName)
			if err := client.SetBucketPolicy(ctx, bucketName, policy); err != nil {
				utils.Logger.WithError(err).Error("Failed to set bucket policy")
			}
		}
	}

	utils.Logger.Infof("MinIO storage initialized (endpoint=%s bucket=%s)", endpoint, bucketName)
	return s, nil
}

// UploadImage writes reader under a dated, random key and returns the key and
// its public URL.
func (s *MinIOStorage) UploadImage(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (string, string, error) {
	key := ObjectKey(time.Now().UTC(), uuid.NewString(), filename)

	_, err := s.client.PutObject(ctx, s.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := PublicURL(s.publicEndpoint, s.bucketName, key, s.useSSL)
	utils.Logger.WithField("key", key).Debug("Image uploaded")
	return key, url, nil
}

func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("MinIO health check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucketName)
	}
	return nil
}

// ObjectKey builds "submissions/<yyyy-mm-dd>/<id><ext>" with a lower-cased
// extension taken from the client's filename.
func ObjectKey(now time.Time, id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("submissions/%s/%s%s", now.Format("2006-01-02"), id, ext)
}

// PublicURL joins the public endpoint, bucket and key. Endpoints without a
// scheme get one from useSSL.
func PublicURL(endpoint, bucket, key string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, key)
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, key)
}
