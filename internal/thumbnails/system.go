package thumbnails

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/pkg/fileutil"
)

// System runs thumbnail commands.
type System interface {
	// Execute applies cmd and returns the resulting thumbnail. A nil
	// thumbnail with a nil error means the dataset now has none.
	Execute(ctx context.Context, cmd Command) (*datasets.Thumbnail, error)

	// Stage writes r to the dataset's staging area under the same size limit
	// as uploads and returns the staging key.
	Stage(ctx context.Context, ds *datasets.Dataset, r io.Reader) (string, error)

	// Find returns the dataset's current thumbnail, or nil.
	Find(ctx context.Context, ds *datasets.Dataset) (*datasets.Thumbnail, error)
}

type system struct {
	files    FileFinder
	datasets DatasetService
	settings Settings
	tempDir  string
	logger   *slog.Logger
}

// New creates a thumbnail System. tempDir holds uploads while they are
// measured; empty selects the OS default.
func New(files FileFinder, datasets DatasetService, settings Settings, tempDir string, logger *slog.Logger) System {
	return &system{
		files:    files,
		datasets: datasets,
		settings: settings,
		tempDir:  tempDir,
		logger:   logger.With("system", "thumbnails"),
	}
}

func (s *system) Execute(ctx context.Context, cmd Command) (*datasets.Thumbnail, error) {
	t, err := s.execute(ctx, cmd)
	updatesTotal.WithLabelValues(intentLabel(cmd.Intent), outcome(err)).Inc()

	if err != nil {
		return nil, err
	}

	s.logger.Info("thumbnail updated",
		"dataset_id", cmd.Dataset.ID,
		"intent", cmd.Intent,
		"file_id", t.FileID(),
	)
	return t, nil
}

func (s *system) execute(ctx context.Context, cmd Command) (*datasets.Thumbnail, error) {
	if !cmd.Intent.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cmd.Intent)
	}
	if cmd.Dataset == nil {
		return nil, fmt.Errorf("%w: dataset required", ErrInvalidInput)
	}

	switch cmd.Intent {
	case IntentSelectFile:
		return s.selectFile(ctx, cmd)
	case IntentUseUploadedImage:
		return s.useUploadedImage(ctx, cmd)
	case IntentRemove:
		return s.remove(ctx, cmd)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cmd.Intent)
	}
}

func (s *system) selectFile(ctx context.Context, cmd Command) (*datasets.Thumbnail, error) {
	if cmd.FileID == nil {
		return nil, fmt.Errorf("%w: a file was not selected", ErrInvalidInput)
	}
	id := *cmd.FileID

	file, err := s.files.Find(ctx, id)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return nil, fmt.Errorf("%w: file %s: %w", ErrInvalidInput, id, err)
		}
		return nil, fmt.Errorf("find file: %w", err)
	}

	if _, err := s.datasets.SetDataFileAsThumbnail(ctx, cmd.Dataset, file); err != nil {
		return nil, wrapDatasetError("set thumbnail", err)
	}

	t, err := s.datasets.Thumbnail(ctx, cmd.Dataset)
	if err != nil {
		return nil, fmt.Errorf("resolve thumbnail: %w", err)
	}

	got := t.FileID()
	if got == nil {
		return nil, fmt.Errorf("%w: thumbnail is absent after selecting file %s", ErrInconsistentState, id)
	}
	if *got != id {
		return nil, fmt.Errorf("%w: thumbnail is file %s, want %s", ErrInconsistentState, *got, id)
	}

	return t, nil
}

func (s *system) useUploadedImage(ctx context.Context, cmd Command) (*datasets.Thumbnail, error) {
	key := cmd.StagingKey
	owned := false
	if key == "" {
		if cmd.Input == nil {
			return nil, fmt.Errorf("%w: an image or staging key is required", ErrInvalidInput)
		}

		staged, err := s.stage(ctx, cmd.Dataset, cmd.Input)
		if err != nil {
			return nil, err
		}
		key = staged
		owned = true
	}

	t, err := s.datasets.MoveLogoFromStagingToFinal(ctx, cmd.Dataset, key)
	if err != nil {
		// A caller-supplied key stays staged so the promotion can be retried.
		if owned {
			if derr := s.datasets.DiscardStagedLogo(ctx, cmd.Dataset, key); derr != nil {
				s.logger.Error("staged logo cleanup failed", "staging_key", key, "error", derr)
			}
		}
		return nil, wrapDatasetError("promote logo", err)
	}
	return t, nil
}

func (s *system) remove(ctx context.Context, cmd Command) (*datasets.Thumbnail, error) {
	if _, err := s.datasets.RemoveThumbnail(ctx, cmd.Dataset); err != nil {
		return nil, wrapDatasetError("remove thumbnail", err)
	}

	t, err := s.datasets.Thumbnail(ctx, cmd.Dataset)
	if err != nil {
		return nil, fmt.Errorf("resolve thumbnail: %w", err)
	}
	if t != nil {
		return nil, fmt.Errorf("%w: thumbnail still present after removal", ErrInconsistentState)
	}

	return nil, nil
}

func (s *system) Stage(ctx context.Context, ds *datasets.Dataset, r io.Reader) (string, error) {
	if ds == nil {
		return "", fmt.Errorf("%w: dataset required", ErrInvalidInput)
	}
	if r == nil {
		return "", fmt.Errorf("%w: an image is required", ErrInvalidInput)
	}
	return s.stage(ctx, ds, r)
}

func (s *system) Find(ctx context.Context, ds *datasets.Dataset) (*datasets.Thumbnail, error) {
	return s.datasets.Thumbnail(ctx, ds)
}

// stage measures r in a temporary file and writes it to the staging area.
// Uploads over the limit never reach the dataset service.
func (s *system) stage(ctx context.Context, ds *datasets.Dataset, r io.Reader) (string, error) {
	limit := s.settings.LogoSizeLimit()
	var key string

	err := fileutil.WithTempFile(r, s.tempDir, func(path string, size int64) error {
		uploadBytes.Observe(float64(size))

		if size > limit {
			return fmt.Errorf("%w: %d bytes, limit %d", ErrLimitExceeded, size, limit)
		}

		staged, err := s.datasets.WriteLogoToStagingArea(ctx, ds, path)
		if err != nil {
			return fmt.Errorf("stage logo: %w", err)
		}
		key = staged
		return nil
	})

	return key, err
}

// wrapDatasetError classifies dataset validation failures as invalid input.
func wrapDatasetError(op string, err error) error {
	switch {
	case errors.Is(err, datasets.ErrFileNotInDataset),
		errors.Is(err, datasets.ErrNotThumbnailable),
		errors.Is(err, datasets.ErrInvalidStagingKey),
		errors.Is(err, datasets.ErrStagingNotFound),
		errors.Is(err, datasets.ErrInvalidImage),
		errors.Is(err, files.ErrNotFound):
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func intentLabel(i Intent) string {
	if !i.Valid() {
		return "unknown"
	}
	return string(i)
}
