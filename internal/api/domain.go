package api

import (
	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/internal/thumbnails"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Files      files.System
	Datasets   datasets.System
	Thumbnails thumbnails.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	filesSys := files.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	datasetsSys := datasets.New(
		runtime.Database.Connection(),
		filesSys,
		runtime.Storage,
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
		cfg.Thumbnails.Size,
	)

	thumbnailsSys := thumbnails.New(
		filesSys,
		datasetsSys,
		&cfg.Thumbnails,
		cfg.Thumbnails.TempDir,
		runtime.Logger,
	)

	return &Domain{
		Files:      filesSys,
		Datasets:   datasetsSys,
		Thumbnails: thumbnailsSys,
	}
}
