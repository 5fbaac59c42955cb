package api

import (
	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/internal/thumbnails"
	"github.com/JaimeStill/dataset-lab/pkg/openapi"
	"github.com/JaimeStill/dataset-lab/pkg/routes"
)

func registerRoutes(r routes.System, runtime *Runtime, domain *Domain, cfg *config.Config) {
	filesHandler := files.NewHandler(domain.Files, runtime.Logger, runtime.Pagination, runtime.MaxUploadSize)
	datasetsHandler := datasets.NewHandler(domain.Datasets, runtime.Logger, runtime.Pagination)
	thumbnailsHandler := thumbnails.NewHandler(domain.Thumbnails, domain.Datasets, runtime.Logger, cfg.Thumbnails.LogoSizeLimit())

	r.RegisterGroup(routes.Group{
		Prefix: cfg.API.BasePath,
		Children: []routes.Group{
			filesHandler.Routes(),
			datasetsHandler.Routes(),
			thumbnailsHandler.Routes(),
		},
	})
}

// buildSpec documents every registered route along with the domain schemas.
func buildSpec(r routes.System, cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)

	spec.Components.AddSchemas(files.Spec.Schemas())
	spec.Components.AddSchemas(datasets.Spec.Schemas())
	spec.Components.AddSchemas(thumbnails.Spec.Schemas())
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"PageRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort": {Type: "array", Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"field":      {Type: "string"},
						"descending": {Type: "boolean"},
					},
				}},
			},
		},
	})

	r.Document(spec)
	return openapi.MarshalJSON(spec)
}
