package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

func TestStorageUploadDownloadRoundtrip(t *testing.T) {
	svc := NewStorageService(newFakeFileRepo(), t.TempDir(), 1<<20, "http://localhost:8080/")

	uploaded, err := svc.Upload(context.Background(), &UploadInput{
		Bucket:      "Booking Attachments",
		Name:        "voucher.PDF",
		ContentType: "application/pdf",
		Size:        11,
		Reader:      strings.NewReader("hello world"),
		UploadedBy:  uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, "booking-attachments", uploaded.Bucket)
	assert.Equal(t, int64(11), uploaded.Size)
	assert.True(t, strings.HasSuffix(uploaded.Path, ".pdf"))
	assert.Equal(t, "http://localhost:8080/api/v1/files/"+uploaded.ID.String(), uploaded.URL)

	file, rc, err := svc.Download(context.Background(), uploaded.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "voucher.PDF", file.Name)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestStorageUploadRejectsOversize(t *testing.T) {
	svc := NewStorageService(newFakeFileRepo(), t.TempDir(), 4, "http://localhost:8080")

	_, err := svc.Upload(context.Background(), &UploadInput{
		Bucket: "attachments",
		Name:   "big.bin",
		Size:   5,
		Reader: strings.NewReader("xxxxx"),
	})
	assert.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperror.GetAppError(err).Code)
}

func TestStorageUploadRequiresBucket(t *testing.T) {
	svc := NewStorageService(newFakeFileRepo(), t.TempDir(), 0, "http://localhost:8080")

	_, err := svc.Upload(context.Background(), &UploadInput{
		Name:   "voucher.pdf",
		Reader: strings.NewReader("x"),
	})
	assert.Error(t, err)
}

func TestStorageDelete(t *testing.T) {
	repo := newFakeFileRepo()
	svc := NewStorageService(repo, t.TempDir(), 0, "http://localhost:8080")

	uploaded, err := svc.Upload(context.Background(), &UploadInput{
		Bucket: "attachments",
		Name:   "voucher.pdf",
		Reader: strings.NewReader("x"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uploaded.ID))

	_, _, err = svc.Download(context.Background(), uploaded.ID)
	assert.Error(t, err)
}
