package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/pkg/imaging"
	"github.com/JaimeStill/dataset-lab/pkg/pagination"
	"github.com/JaimeStill/dataset-lab/pkg/query"
	"github.com/JaimeStill/dataset-lab/pkg/repository"
	"github.com/JaimeStill/dataset-lab/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a file repository backed by the database and blob storage.
func New(db *sql.DB, storage storage.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    storage,
		logger:     logger.With("system", "files"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[DataFile], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDataFile)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*DataFile, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("ID", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanDataFile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) Data(ctx context.Context, id uuid.UUID) (*DataFile, []byte, error) {
	f, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.storage.Retrieve(ctx, f.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: blob missing for %s", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("retrieve file: %w", err)
	}

	return f, data, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*DataFile, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}

	id := uuid.New()
	key := StorageKey(cmd.DatasetID, id, cmd.Filename)

	name := cmd.Name
	if name == "" {
		name = cmd.Filename
	}

	contentType := DetectContentType(cmd.ContentType, cmd.Data)

	pageCount := cmd.PageCount
	if pageCount == nil && contentType == "application/pdf" {
		pc, err := PageCount(cmd.Data)
		if err != nil {
			r.logger.Warn("failed to extract pdf page count", "filename", cmd.Filename, "error", err)
		} else {
			pageCount = pc
		}
	}

	if err := r.storage.Store(ctx, key, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := `INSERT INTO data_files(id, dataset_id, name, filename, content_type, size_bytes, page_count, storage_key)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + returningColumns

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (DataFile, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, cmd.DatasetID, name, cmd.Filename, contentType, int64(len(cmd.Data)), pageCount, key,
		}, scanDataFile)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", key, "error", delErr)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrDatasetNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("file created", "id", f.ID, "dataset_id", f.DatasetID, "storage_key", key)
	return &f, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := r.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	q := `DELETE FROM data_files WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.storage.Delete(ctx, f.StorageKey); err != nil {
		r.logger.Error("storage cleanup failed", "storage_key", f.StorageKey, "error", err)
	}

	r.logger.Info("file deleted", "id", id)
	return nil
}

func (r *repo) DeleteByDataset(ctx context.Context, datasetID uuid.UUID) error {
	q := `DELETE FROM data_files WHERE dataset_id = $1 RETURNING storage_key`

	keys, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]string, error) {
		return repository.QueryMany(ctx, tx, q, []any{datasetID}, func(s repository.Scanner) (string, error) {
			var key string
			err := s.Scan(&key)
			return key, err
		})
	})

	if err != nil {
		return fmt.Errorf("delete dataset files: %w", err)
	}

	for _, key := range keys {
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Error("storage cleanup failed", "storage_key", key, "error", err)
		}
	}

	r.logger.Info("dataset files deleted", "dataset_id", datasetID, "count", len(keys))
	return nil
}

func (r *repo) FirstImage(ctx context.Context, datasetID uuid.UUID) (*DataFile, error) {
	types := imaging.SupportedTypes()
	values := make([]any, len(types))
	for i, t := range types {
		values[i] = t
	}

	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt"}).
		WhereEquals("DatasetID", datasetID).
		WhereIn("ContentType", values...).
		BuildFirst()

	f, err := repository.QueryOne(ctx, r.db, q, args, scanDataFile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}
