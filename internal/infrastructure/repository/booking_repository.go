package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	domainRepo "github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/pkg/pagination"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).
		Preload("Agent").
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).First(&booking, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) List(ctx context.Context, agentID uuid.UUID, params *domainRepo.BookingFilterParams) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	if params == nil {
		params = &domainRepo.BookingFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	query := r.db.WithContext(ctx).Model(&entity.Booking{})

	// Only filter by agent_id if a non-zero agentID is provided (admins can see all)
	if agentID != uuid.Nil {
		query = query.Where("agent_id = ?", agentID)
	}

	if params.Search != "" {
		query = query.Where("reference ILIKE ? OR client_name ILIKE ? OR destination ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := bookingSortColumn(params.SortBy)
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Agent").
		Order(sortBy + " " + sortOrder).
		Find(&bookings).Error

	return bookings, total, err
}

// bookingSortColumn resolves a client-supplied sort key against the set of
// sortable columns. The value is interpolated into the ORDER BY clause, so
// anything outside the whitelist falls back to created_at.
func bookingSortColumn(sortBy string) string {
	switch sortBy {
	case "created_at", "reference", "client_name", "destination", "status", "check_in":
		return sortBy
	}
	return "created_at"
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).Unscoped().Count(&count).Error
	return int(count) + 1, err
}
