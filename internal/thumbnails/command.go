// Package thumbnails updates or clears a dataset's display thumbnail.
//
// A single Execute call dispatches on the caller's Intent: select one of the
// dataset's files, upload a standalone image, or remove the thumbnail. File
// lookup, staging and persistence are delegated to collaborators.
package thumbnails

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/files"
)

// Command describes one thumbnail update.
//
// FileID is required for IntentSelectFile. For IntentUseUploadedImage, a
// non-empty StagingKey promotes an already staged logo; otherwise Input is
// read into a temporary file and staged first.
type Command struct {
	Dataset    *datasets.Dataset
	Intent     Intent
	FileID     *uuid.UUID
	Input      io.Reader
	StagingKey string
}

// FileFinder looks up data files by ID.
type FileFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*files.DataFile, error)
}

// DatasetService performs the dataset mutations the command relies on.
type DatasetService interface {
	SetDataFileAsThumbnail(ctx context.Context, ds *datasets.Dataset, file *files.DataFile) (*datasets.Dataset, error)
	RemoveThumbnail(ctx context.Context, ds *datasets.Dataset) (*datasets.Dataset, error)
	WriteLogoToStagingArea(ctx context.Context, ds *datasets.Dataset, path string) (string, error)
	MoveLogoFromStagingToFinal(ctx context.Context, ds *datasets.Dataset, stagingKey string) (*datasets.Thumbnail, error)
	DiscardStagedLogo(ctx context.Context, ds *datasets.Dataset, stagingKey string) error
	Thumbnail(ctx context.Context, ds *datasets.Dataset) (*datasets.Thumbnail, error)
}

// Settings exposes the logo upload size limit in bytes.
type Settings interface {
	LogoSizeLimit() int64
}
