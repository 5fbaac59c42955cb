// Package files manages the data files attached to datasets. File bytes live in
// blob storage; metadata lives in the data_files table.
package files

import (
	"time"

	"github.com/google/uuid"
)

// DataFile is a stored file belonging to a dataset.
type DataFile struct {
	ID          uuid.UUID `json:"id"`
	DatasetID   uuid.UUID `json:"dataset_id"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommand contains the data required to attach a file to a dataset.
type CreateCommand struct {
	DatasetID   uuid.UUID
	Name        string
	Filename    string
	ContentType string
	PageCount   *int
	Data        []byte
}
