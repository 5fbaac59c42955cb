package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/api"
	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/infrastructure"
	"github.com/JaimeStill/dataset-lab/internal/thumbnails"
)

type datasetFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*datasets.Dataset, error)
}

// session holds the systems a single CLI invocation needs.
type session struct {
	datasets   datasetFinder
	thumbnails thumbnails.System
	close      func() error
}

type opener func(configPath string) (*session, error)

// openSession starts infrastructure the same way the server does and waits
// for startup hooks so the database is reachable before the command runs.
func openSession(configPath string) (*session, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	domain := api.NewDomain(api.NewRuntime(cfg, infra), cfg)

	return &session{
		datasets:   domain.Datasets,
		thumbnails: domain.Thumbnails,
		close: func() error {
			return infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		},
	}, nil
}
