package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	"github.com/yatrasutra/invoice-backend/pkg/pagination"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	GetByReference(ctx context.Context, reference string) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, agentID uuid.UUID, params *BookingFilterParams) ([]entity.Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// BookingFilterParams contains filtering parameters for booking queries
type BookingFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BookingStatus
	SortBy     string
	SortOrder  string
}
