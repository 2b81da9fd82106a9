package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

// fakeFileRepo is an in-memory StoredFileRepository
type fakeFileRepo struct {
	files map[uuid.UUID]*entity.StoredFile
}

func newFakeFileRepo(files ...*entity.StoredFile) *fakeFileRepo {
	repo := &fakeFileRepo{files: make(map[uuid.UUID]*entity.StoredFile)}
	for _, f := range files {
		repo.files[f.ID] = f
	}
	return repo
}

func (r *fakeFileRepo) Create(ctx context.Context, file *entity.StoredFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	r.files[file.ID] = file
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredFile, error) {
	return r.files[id], nil
}

func (r *fakeFileRepo) ListByBucket(ctx context.Context, bucket string) ([]entity.StoredFile, error) {
	var out []entity.StoredFile
	for _, f := range r.files {
		if f.Bucket == bucket {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.files, id)
	return nil
}

func newTestBookingService(bookingRepo *fakeBookingRepo, fileRepo *fakeFileRepo) *BookingService {
	return NewBookingService(bookingRepo, fileRepo)
}

func TestCreateBookingAssignsReference(t *testing.T) {
	svc := newTestBookingService(newFakeBookingRepo(), newFakeFileRepo())

	agentID := uuid.New()
	booking, err := svc.CreateBooking(context.Background(), agentID, &BookingInput{
		ClientName:  "Meera Nair",
		Destination: "Goa",
	})
	require.NoError(t, err)

	assert.Equal(t, "BK-000001", booking.Reference)
	assert.Equal(t, agentID, booking.AgentID)
	assert.Equal(t, enum.BookingStatusPending, booking.Status)
}

func TestCreateBookingResolvesAttachment(t *testing.T) {
	file := &entity.StoredFile{
		ID:     uuid.New(),
		Bucket: "attachments",
		Name:   "voucher.pdf",
		URL:    "http://localhost:8080/api/v1/files/abc",
	}
	svc := newTestBookingService(newFakeBookingRepo(), newFakeFileRepo(file))

	fileID := file.ID
	booking, err := svc.CreateBooking(context.Background(), uuid.New(), &BookingInput{
		ClientName:       "Meera Nair",
		AttachmentFileID: &fileID,
	})
	require.NoError(t, err)

	require.NotNil(t, booking.Attachment)
	assert.Equal(t, file.ID.String()+"|"+file.URL, *booking.Attachment)
}

func TestCreateBookingUnknownAttachment(t *testing.T) {
	svc := newTestBookingService(newFakeBookingRepo(), newFakeFileRepo())

	fileID := uuid.New()
	_, err := svc.CreateBooking(context.Background(), uuid.New(), &BookingInput{
		ClientName:       "Meera Nair",
		AttachmentFileID: &fileID,
	})
	assert.Error(t, err)
}

func TestGetBookingEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	booking := testBooking(owner)
	svc := newTestBookingService(newFakeBookingRepo(booking), newFakeFileRepo())

	_, err := svc.GetBooking(context.Background(),
		booking.ID, &RequesterInfo{UserID: uuid.New(), Role: entity.RoleAgent})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	got, err := svc.GetBooking(context.Background(),
		booking.ID, &RequesterInfo{UserID: owner, Role: entity.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	got, err = svc.GetBooking(context.Background(),
		booking.ID, &RequesterInfo{UserID: uuid.New(), Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestListBookingsScopesAgents(t *testing.T) {
	agentA := uuid.New()
	agentB := uuid.New()
	repo := newFakeBookingRepo(testBooking(agentA), testBooking(agentB))
	svc := newTestBookingService(repo, newFakeFileRepo())

	own, total, err := svc.ListBookings(context.Background(),
		&RequesterInfo{UserID: agentA, Role: entity.RoleAgent}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, own, 1)

	all, total, err := svc.ListBookings(context.Background(),
		&RequesterInfo{UserID: agentA, Role: entity.RoleAdmin}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestUpdateBookingStatus(t *testing.T) {
	owner := uuid.New()
	booking := testBooking(owner)
	svc := newTestBookingService(newFakeBookingRepo(booking), newFakeFileRepo())

	updated, err := svc.UpdateBookingStatus(context.Background(),
		booking.ID, &RequesterInfo{UserID: owner, Role: entity.RoleAgent},
		enum.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, enum.BookingStatusCancelled, updated.Status)
}
