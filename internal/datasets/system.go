package datasets

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/pkg/pagination"
)

// System defines dataset operations, including thumbnail management.
// Thumbnail mutations update the passed dataset in place.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Dataset], error)
	Find(ctx context.Context, id uuid.UUID) (*Dataset, error)
	Create(ctx context.Context, cmd CreateCommand) (*Dataset, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetDataFileAsThumbnail selects one of the dataset's image files as its thumbnail
	// and discards any logo.
	SetDataFileAsThumbnail(ctx context.Context, ds *Dataset, file *files.DataFile) (*Dataset, error)

	// RemoveThumbnail clears the logo and file selection and switches the
	// dataset to the generic thumbnail.
	RemoveThumbnail(ctx context.Context, ds *Dataset) (*Dataset, error)

	// WriteLogoToStagingArea copies the file at path into the dataset's
	// staging area and returns its staging key.
	WriteLogoToStagingArea(ctx context.Context, ds *Dataset, path string) (string, error)

	// MoveLogoFromStagingToFinal promotes a staged logo to the dataset's
	// logo and returns the resulting thumbnail.
	MoveLogoFromStagingToFinal(ctx context.Context, ds *Dataset, stagingKey string) (*Thumbnail, error)

	// DiscardStagedLogo deletes a staged logo that will not be promoted.
	DiscardStagedLogo(ctx context.Context, ds *Dataset, stagingKey string) error

	// Thumbnail resolves the dataset's current thumbnail; nil means none.
	Thumbnail(ctx context.Context, ds *Dataset) (*Thumbnail, error)

	// ThumbnailData returns PNG bytes for the dataset's thumbnail or ErrNoThumbnail.
	ThumbnailData(ctx context.Context, id uuid.UUID) ([]byte, error)
}
