package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
	"github.com/yatrasutra/invoice-backend/pkg/utils"
)

// StorageService stores uploaded binary objects on disk, bucketed by
// purpose, and tracks their metadata in the database.
type StorageService struct {
	fileRepo      repository.StoredFileRepository
	basePath      string
	maxSize       int64
	publicBaseURL string
}

// NewStorageService creates a new storage service
func NewStorageService(fileRepo repository.StoredFileRepository, basePath string, maxSize int64, publicBaseURL string) *StorageService {
	return &StorageService{
		fileRepo:      fileRepo,
		basePath:      basePath,
		maxSize:       maxSize,
		publicBaseURL: publicBaseURL,
	}
}

// UploadInput describes one incoming object
type UploadInput struct {
	Bucket      string
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
	UploadedBy  uuid.UUID
}

// Upload writes the object under its bucket directory and records its
// metadata. The stored filename is the file ID so bucket contents never
// collide regardless of what clients name their uploads.
func (s *StorageService) Upload(ctx context.Context, input *UploadInput) (*entity.StoredFile, error) {
	if input.Bucket == "" {
		return nil, apperror.NewBadRequestError("Bucket is required")
	}
	if s.maxSize > 0 && input.Size > s.maxSize {
		return nil, apperror.NewAppError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d byte upload limit", s.maxSize))
	}

	bucket := utils.Slugify(input.Bucket)
	id := utils.NewUUID()

	dir := filepath.Join(s.basePath, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}

	path := filepath.Join(dir, id.String()+extensionOf(input.Name))
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, input.Reader)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	file := &entity.StoredFile{
		ID:          id,
		Bucket:      bucket,
		Name:        input.Name,
		ContentType: input.ContentType,
		Size:        written,
		Path:        path,
		URL:         s.publicURL(id),
		UploadedBy:  input.UploadedBy,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		os.Remove(path)
		return nil, err
	}

	return file, nil
}

// Download opens a stored object for reading. The caller owns the
// returned reader and must close it.
func (s *StorageService) Download(ctx context.Context, id uuid.UUID) (*entity.StoredFile, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return nil, nil, apperror.NewNotFoundError("File")
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, nil, apperror.NewNotFoundError("File")
	}

	return file, f, nil
}

// ListBucket lists all objects in a bucket
func (s *StorageService) ListBucket(ctx context.Context, bucket string) ([]entity.StoredFile, error) {
	return s.fileRepo.ListByBucket(ctx, utils.Slugify(bucket))
}

// Delete removes an object and its metadata
func (s *StorageService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if file == nil {
		return apperror.NewNotFoundError("File")
	}

	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return s.fileRepo.Delete(ctx, id)
}

func (s *StorageService) publicURL(id uuid.UUID) string {
	base := strings.TrimSuffix(s.publicBaseURL, "/")
	return base + "/api/v1/files/" + id.String()
}

func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if len(ext) > 10 {
		return ""
	}
	return strings.ToLower(ext)
}
