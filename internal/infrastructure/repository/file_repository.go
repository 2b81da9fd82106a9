package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	domainRepo "github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"gorm.io/gorm"
)

type storedFileRepository struct {
	db *gorm.DB
}

// NewStoredFileRepository creates a new stored file repository
func NewStoredFileRepository(db *gorm.DB) domainRepo.StoredFileRepository {
	return &storedFileRepository{db: db}
}

func (r *storedFileRepository) Create(ctx context.Context, file *entity.StoredFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *storedFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredFile, error) {
	var file entity.StoredFile
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &file, err
}

func (r *storedFileRepository) ListByBucket(ctx context.Context, bucket string) ([]entity.StoredFile, error) {
	var files []entity.StoredFile
	err := r.db.WithContext(ctx).
		Where("bucket = ?", bucket).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *storedFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StoredFile{}, "id = ?", id).Error
}
