package datasets

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/files"
)

// FileLookup is the part of the file system needed to resolve thumbnails.
type FileLookup interface {
	Find(ctx context.Context, id uuid.UUID) (*files.DataFile, error)
	FirstImage(ctx context.Context, datasetID uuid.UUID) (*files.DataFile, error)
}

// ResolveThumbnail determines the thumbnail currently shown for ds.
//
// Resolution order: the generic flag suppresses any thumbnail; a logo wins
// over files; an explicitly selected file is used when it still exists;
// otherwise the oldest image file of the dataset is chosen. A nil result
// with a nil error means the dataset has no thumbnail.
func ResolveThumbnail(ctx context.Context, ds *Dataset, lookup FileLookup) (*Thumbnail, error) {
	if ds.UseGenericThumbnail {
		return nil, nil
	}

	if ds.LogoKey != nil {
		return logoThumbnail(ds.ID, *ds.LogoKey), nil
	}

	if ds.ThumbnailFileID != nil {
		f, err := lookup.Find(ctx, *ds.ThumbnailFileID)
		if err != nil {
			if errors.Is(err, files.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return fileThumbnail(ds.ID, f), nil
	}

	f, err := lookup.FirstImage(ctx, ds.ID)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fileThumbnail(ds.ID, f), nil
}

func logoThumbnail(datasetID uuid.UUID, logoKey string) *Thumbnail {
	return &Thumbnail{
		DatasetID:   datasetID,
		Source:      SourceLogo,
		StorageKey:  LogoThumbnailKey(logoKey),
		ContentType: "image/png",
	}
}

func fileThumbnail(datasetID uuid.UUID, f *files.DataFile) *Thumbnail {
	return &Thumbnail{
		DatasetID:   datasetID,
		Source:      SourceFile,
		DataFile:    f,
		StorageKey:  f.StorageKey,
		ContentType: f.ContentType,
	}
}
