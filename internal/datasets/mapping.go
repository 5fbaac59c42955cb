package datasets

import (
	"net/url"

	"github.com/JaimeStill/dataset-lab/pkg/query"
	"github.com/JaimeStill/dataset-lab/pkg/repository"
)

var projection = query.NewProjectionMap("public", "datasets", "ds").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("thumbnail_file_id", "ThumbnailFileID").
	Project("logo_key", "LogoKey").
	Project("use_generic_thumbnail", "UseGenericThumbnail").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

const returningColumns = "id, title, description, thumbnail_file_id, logo_key, use_generic_thumbnail, created_at, updated_at"

func scanDataset(s repository.Scanner) (Dataset, error) {
	var d Dataset
	err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.ThumbnailFileID,
		&d.LogoKey,
		&d.UseGenericThumbnail,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

type Filters struct {
	Title *string
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if t := values.Get("title"); t != "" {
		f.Title = &t
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Title", f.Title)
}
