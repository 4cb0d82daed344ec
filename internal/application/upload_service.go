package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

// provider uploads land under listings/<owner>/<uuid><ext> in the bucket
const maxUploadBytes = 10 << 20

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

// UploadService stores provider media (gallery images, verification
// documents) in Cloud Storage and returns the public URL to embed in a
// listing or onboarding payload.
type UploadService struct {
	gcs    *storage.Client
	bucket string
	log    *logrus.Logger
}

func NewUploadService(gcs *storage.Client, bucket string, log *logrus.Logger) *UploadService {
	return &UploadService{gcs: gcs, bucket: bucket, log: log}
}

func (s *UploadService) Upload(ctx context.Context, ownerID string, r io.Reader, filename, contentType string, size int64) (string, error) {
	if s.gcs == nil || s.bucket == "" {
		return "", apperr.Internal(errStorageNotConfigured)
	}
	if size > maxUploadBytes {
		return "", apperr.BadRequest("File exceeds the 10 MB upload limit")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		return "", apperr.BadRequest("Unsupported file type")
	}

	objectPath := filepath.ToSlash(filepath.Join("listings", ownerID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.gcs, s.bucket, objectPath, contentType, r)
	if err != nil {
		s.log.WithError(err).WithField("object", objectPath).Error("gcs upload failed")
		return "", apperr.Internal(err)
	}
	return url, nil
}

var errStorageNotConfigured = errors.New("object storage not configured")
