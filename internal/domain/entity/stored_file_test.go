package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFileRefRoundtrip(t *testing.T) {
	file := &StoredFile{
		ID:  uuid.New(),
		URL: "http://localhost:8080/api/v1/files/abc",
	}

	fileID, url := SplitFileRef(file.Ref())
	assert.Equal(t, file.ID.String(), fileID)
	assert.Equal(t, file.URL, url)
}

func TestSplitFileRefWithoutSeparator(t *testing.T) {
	fileID, url := SplitFileRef("bare-file-id")
	assert.Equal(t, "bare-file-id", fileID)
	assert.Empty(t, url)
}

func TestFileRefEmptyURL(t *testing.T) {
	file := &StoredFile{ID: uuid.New()}

	fileID, url := SplitFileRef(file.Ref())
	assert.Equal(t, file.ID.String(), fileID)
	assert.Empty(t, url)
}
