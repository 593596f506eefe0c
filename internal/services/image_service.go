package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/storage"
	"go.uber.org/zap"
)

var ErrImageStoreFailed = errors.New("failed to store image")

// ImageService validates uploaded images and hands them to a store.
type ImageService struct {
	store   storage.Store
	maxSize int64
}

// NewImageService creates a new ImageService.
func NewImageService(store storage.Store) *ImageService {
	return &ImageService{
		store:   store,
		maxSize: constants.MaxImageSize,
	}
}

// Upload stores an image under prefix and returns its URL. Only image
// content is accepted.
func (s *ImageService) Upload(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apierrors.NewValidationError("image", "No file was submitted.")
	}
	if file.Size > s.maxSize {
		return "", apierrors.NewValidationError("image",
			fmt.Sprintf("Ensure the file is at most %d bytes.", s.maxSize))
	}

	f, err := file.Open()
	if err != nil {
		return "", apierrors.NewValidationError("image", "The submitted file could not be read.")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", apierrors.NewValidationError("image", "The submitted file could not be read.")
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", apierrors.NewValidationError("image",
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	key := storage.ObjectKey(prefix, file.Filename)
	url, err := s.store.Save(ctx, key, f, contentType)
	if err != nil {
		logger.Log.Error("image_store_failed", zap.String("key", key), zap.Error(err))
		return "", ErrImageStoreFailed
	}

	logger.Log.Info("image_stored", zap.String("key", key), zap.Int64("size", file.Size))
	return url, nil
}
