package files

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/pkg/pagination"
)

// System defines data file operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[DataFile], error)
	Find(ctx context.Context, id uuid.UUID) (*DataFile, error)

	// Data returns the file record and its stored bytes.
	Data(ctx context.Context, id uuid.UUID) (*DataFile, []byte, error)

	Create(ctx context.Context, cmd CreateCommand) (*DataFile, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByDataset removes every file of a dataset along with its blobs.
	DeleteByDataset(ctx context.Context, datasetID uuid.UUID) error

	// FirstImage returns the oldest file of the dataset with a renderable
	// image content type, or ErrNotFound.
	FirstImage(ctx context.Context, datasetID uuid.UUID) (*DataFile, error)
}
