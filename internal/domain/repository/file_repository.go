package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
)

// StoredFileRepository defines the interface for stored file metadata operations
type StoredFileRepository interface {
	Create(ctx context.Context, file *entity.StoredFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredFile, error)
	ListByBucket(ctx context.Context, bucket string) ([]entity.StoredFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
