// Package datasets manages datasets and their display thumbnails.
//
// A dataset's thumbnail comes from one of two places: a standalone logo image
// uploaded through the staging area, or one of the dataset's own image files.
// Datasets can also opt into a generic thumbnail, which suppresses both.
package datasets

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/files"
)

// Dataset is a titled collection of data files.
type Dataset struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	ThumbnailFileID     *uuid.UUID `json:"thumbnail_file_id,omitempty"`
	LogoKey             *string    `json:"logo_key,omitempty"`
	UseGenericThumbnail bool       `json:"use_generic_thumbnail"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type CreateCommand struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type UpdateCommand struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// ThumbnailSource identifies where a thumbnail image comes from.
type ThumbnailSource string

const (
	SourceLogo ThumbnailSource = "logo"
	SourceFile ThumbnailSource = "file"
)

// Thumbnail describes the image shown for a dataset. DataFile is set only
// when Source is SourceFile.
type Thumbnail struct {
	DatasetID   uuid.UUID       `json:"dataset_id"`
	Source      ThumbnailSource `json:"source"`
	DataFile    *files.DataFile `json:"data_file,omitempty"`
	StorageKey  string          `json:"storage_key"`
	ContentType string          `json:"content_type"`
}

// FileID returns the ID of the backing data file, or nil for logo thumbnails.
func (t *Thumbnail) FileID() *uuid.UUID {
	if t == nil || t.DataFile == nil {
		return nil
	}
	id := t.DataFile.ID
	return &id
}
