package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoredFile is one object in the binary file store. Objects are uploaded
// into a named bucket and addressed by their file ID; persisted records
// reference them through the composite "{fileId}|{url}" value.
type StoredFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Bucket      string    `gorm:"size:100;not null;index" json:"bucket"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	Size        int64     `json:"size"`
	Path        string    `gorm:"size:512;not null" json:"-"`
	URL         string    `gorm:"size:512" json:"url"`

	UploadedBy uuid.UUID      `gorm:"type:uuid;index" json:"uploaded_by"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stored file
func (f *StoredFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoredFile model
func (StoredFile) TableName() string {
	return "stored_files"
}

// Ref returns the composite "{fileId}|{url}" value persisted on records
// that reference this file.
func (f *StoredFile) Ref() string {
	return f.ID.String() + "|" + f.URL
}

// SplitFileRef breaks a composite "{fileId}|{url}" value into its parts.
// The URL half may be empty; a value without a separator is all file ID.
func SplitFileRef(ref string) (fileID, url string) {
	if i := strings.IndexByte(ref, '|'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}
