// Package api assembles the dataset, file and thumbnail domains into the
// HTTP API served under the configured base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/internal/infrastructure"
	"github.com/JaimeStill/dataset-lab/pkg/middleware"
	"github.com/JaimeStill/dataset-lab/pkg/openapi"
	"github.com/JaimeStill/dataset-lab/pkg/routes"
)

// NewHandler builds the API handler with its middleware stack applied.
// The OpenAPI document is rendered once here and served at <base>/openapi.json.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	r := routes.New(runtime.Logger)
	registerRoutes(r, runtime, domain, cfg)

	spec, err := buildSpec(r, cfg)
	if err != nil {
		return nil, err
	}
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: cfg.API.BasePath + "/openapi.json",
		Handler: openapi.ServeSpec(spec),
	})

	m := middleware.New()
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.TrimSlash())

	return m.Apply(r.Build()), nil
}
