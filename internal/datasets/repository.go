package datasets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/pkg/cache"
	"github.com/JaimeStill/dataset-lab/pkg/imaging"
	"github.com/JaimeStill/dataset-lab/pkg/pagination"
	"github.com/JaimeStill/dataset-lab/pkg/query"
	"github.com/JaimeStill/dataset-lab/pkg/repository"
	"github.com/JaimeStill/dataset-lab/pkg/storage"
)

type repo struct {
	db            *sql.DB
	files         files.System
	storage       storage.System
	cache         cache.System
	logger        *slog.Logger
	pagination    pagination.Config
	thumbnailSize int
}

// New creates a dataset repository. thumbnailSize bounds the longest side of
// rendered thumbnails in pixels.
func New(
	db *sql.DB,
	files files.System,
	storage storage.System,
	cache cache.System,
	logger *slog.Logger,
	pagination pagination.Config,
	thumbnailSize int,
) System {
	return &repo{
		db:            db,
		files:         files,
		storage:       storage,
		cache:         cache,
		logger:        logger.With("system", "datasets"),
		pagination:    pagination,
		thumbnailSize: thumbnailSize,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Dataset], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count datasets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDataset)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Dataset, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDataset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Dataset, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidDataset)
	}

	q := `INSERT INTO datasets(id, title, description)
		VALUES($1, $2, $3)
		RETURNING ` + returningColumns

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Dataset, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), title, cmd.Description}, scanDataset)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("dataset created", "id", d.ID, "title", d.Title)
	return &d, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Dataset, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidDataset)
	}

	q := `UPDATE datasets SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + returningColumns

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Dataset, error) {
		return repository.QueryOne(ctx, tx, q, []any{title, cmd.Description, id}, scanDataset)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("dataset updated", "id", d.ID, "title", d.Title)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	ds, err := r.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if err := r.files.DeleteByDataset(ctx, id); err != nil {
		return err
	}

	q := `DELETE FROM datasets WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.releaseLogo(ctx, id, ds.LogoKey)

	r.logger.Info("dataset deleted", "id", id)
	return nil
}

func (r *repo) SetDataFileAsThumbnail(ctx context.Context, ds *Dataset, file *files.DataFile) (*Dataset, error) {
	if file.DatasetID != ds.ID {
		return nil, fmt.Errorf("%w: file %s, dataset %s", ErrFileNotInDataset, file.ID, ds.ID)
	}
	if !imaging.IsSupported(file.ContentType) {
		return nil, fmt.Errorf("%w: %s", ErrNotThumbnailable, file.ContentType)
	}

	q := `UPDATE datasets
		SET thumbnail_file_id = $1, logo_key = NULL, use_generic_thumbnail = FALSE, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + returningColumns

	updated, err := r.updateThumbnail(ctx, q, file.ID, ds.ID)
	if err != nil {
		return nil, err
	}

	r.releaseLogo(ctx, ds.ID, ds.LogoKey)

	*ds = *updated
	r.logger.Info("dataset thumbnail set to file", "id", ds.ID, "file_id", file.ID)
	return ds, nil
}

func (r *repo) RemoveThumbnail(ctx context.Context, ds *Dataset) (*Dataset, error) {
	q := `UPDATE datasets
		SET thumbnail_file_id = NULL, logo_key = NULL, use_generic_thumbnail = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + returningColumns

	updated, err := r.updateThumbnail(ctx, q, ds.ID)
	if err != nil {
		return nil, err
	}

	r.releaseLogo(ctx, ds.ID, ds.LogoKey)

	*ds = *updated
	r.logger.Info("dataset thumbnail removed", "id", ds.ID)
	return ds, nil
}

func (r *repo) WriteLogoToStagingArea(ctx context.Context, ds *Dataset, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}

	key := StagingKey(ds.ID)
	if err := r.storage.Store(ctx, key, data); err != nil {
		return "", fmt.Errorf("stage logo: %w", err)
	}

	r.logger.Info("logo staged", "id", ds.ID, "staging_key", key, "size", len(data))
	return key, nil
}

func (r *repo) MoveLogoFromStagingToFinal(ctx context.Context, ds *Dataset, stagingKey string) (*Thumbnail, error) {
	key, err := ValidateStagingKey(ds.ID, stagingKey)
	if err != nil {
		return nil, err
	}

	original, err := r.storage.Retrieve(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStagingNotFound, key)
		}
		return nil, fmt.Errorf("retrieve staged logo: %w", err)
	}

	thumb, err := imaging.Thumbnail(original, r.thumbnailSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	logoKey := NewLogoKey(ds.ID)
	if err := r.storeLogo(ctx, logoKey, original, thumb); err != nil {
		r.releaseLogo(ctx, ds.ID, &logoKey)
		return nil, err
	}

	q := `UPDATE datasets
		SET logo_key = $1, thumbnail_file_id = NULL, use_generic_thumbnail = FALSE, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + returningColumns

	updated, err := r.updateThumbnail(ctx, q, logoKey, ds.ID)
	if err != nil {
		r.releaseLogo(ctx, ds.ID, &logoKey)
		return nil, err
	}

	if err := r.storage.Delete(ctx, key); err != nil {
		r.logger.Error("staging cleanup failed", "staging_key", key, "error", err)
	}

	if previous := ds.LogoKey; previous != nil && *previous != logoKey {
		r.releaseLogo(ctx, ds.ID, previous)
	}

	*ds = *updated
	r.logger.Info("logo promoted", "id", ds.ID, "logo_key", logoKey)
	return r.Thumbnail(ctx, ds)
}

func (r *repo) DiscardStagedLogo(ctx context.Context, ds *Dataset, stagingKey string) error {
	key, err := ValidateStagingKey(ds.ID, stagingKey)
	if err != nil {
		return err
	}

	if err := r.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("discard staged logo: %w", err)
	}

	r.logger.Info("staged logo discarded", "id", ds.ID, "staging_key", key)
	return nil
}

func (r *repo) Thumbnail(ctx context.Context, ds *Dataset) (*Thumbnail, error) {
	t, err := ResolveThumbnail(ctx, ds, r.files)
	if err != nil {
		return nil, fmt.Errorf("resolve thumbnail: %w", err)
	}
	return t, nil
}

func (r *repo) ThumbnailData(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ds, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	t, err := r.Thumbnail(ctx, ds)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoThumbnail
	}

	key := cacheKey(t)
	if data, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("thumbnail cache read failed", "key", key, "error", err)
	} else if ok {
		return data, nil
	}

	data, err := r.render(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data); err != nil {
		r.logger.Warn("thumbnail cache write failed", "key", key, "error", err)
	}
	return data, nil
}

func (r *repo) render(ctx context.Context, t *Thumbnail) ([]byte, error) {
	if t.Source == SourceLogo {
		data, err := r.storage.Retrieve(ctx, t.StorageKey)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNoThumbnail
			}
			return nil, fmt.Errorf("retrieve logo thumbnail: %w", err)
		}
		return data, nil
	}

	_, data, err := r.files.Data(ctx, t.DataFile.ID)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return nil, ErrNoThumbnail
		}
		return nil, err
	}

	out, err := imaging.Thumbnail(data, r.thumbnailSize)
	if err != nil {
		return nil, fmt.Errorf("render thumbnail: %w", err)
	}
	return out, nil
}

func (r *repo) updateThumbnail(ctx context.Context, q string, args ...any) (*Dataset, error) {
	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Dataset, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDataset)
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, files.ErrNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) storeLogo(ctx context.Context, logoKey string, original, thumb []byte) error {
	if err := r.storage.Store(ctx, logoKey, original); err != nil {
		return fmt.Errorf("store logo: %w", err)
	}
	if err := r.storage.Store(ctx, LogoThumbnailKey(logoKey), thumb); err != nil {
		return fmt.Errorf("store logo thumbnail: %w", err)
	}
	return nil
}

// releaseLogo deletes the blobs and cached rendering of a logo that is no
// longer referenced. A nil key is a no-op.
func (r *repo) releaseLogo(ctx context.Context, id uuid.UUID, logoKey *string) {
	if logoKey == nil {
		return
	}

	thumbKey := LogoThumbnailKey(*logoKey)
	for _, key := range []string{*logoKey, thumbKey} {
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Error("logo cleanup failed", "storage_key", key, "error", err)
		}
	}

	if err := r.cache.Delete(ctx, logoCacheKey(id, thumbKey)); err != nil {
		r.logger.Warn("thumbnail cache invalidation failed", "id", id, "error", err)
	}
}
