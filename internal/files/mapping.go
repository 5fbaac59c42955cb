package files

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/pkg/query"
	"github.com/JaimeStill/dataset-lab/pkg/repository"
)

var projection = query.NewProjectionMap("public", "data_files", "f").
	Project("id", "ID").
	Project("dataset_id", "DatasetID").
	Project("name", "Name").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

const returningColumns = "id, dataset_id, name, filename, content_type, size_bytes, page_count, storage_key, created_at"

func scanDataFile(s repository.Scanner) (DataFile, error) {
	var f DataFile
	err := s.Scan(
		&f.ID,
		&f.DatasetID,
		&f.Name,
		&f.Filename,
		&f.ContentType,
		&f.SizeBytes,
		&f.PageCount,
		&f.StorageKey,
		&f.CreatedAt,
	)
	return f, err
}

// Filters contains optional criteria for file queries.
type Filters struct {
	DatasetID   *uuid.UUID
	Name        *string
	ContentType *string
}

// FiltersFromQuery extracts file filters from URL query parameters.
// An unparseable dataset_id is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("dataset_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.DatasetID = &id
		}
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.DatasetID != nil {
		b.WhereEquals("DatasetID", *f.DatasetID)
	}
	return b.
		WhereContains("Name", f.Name).
		WhereContains("ContentType", f.ContentType)
}
