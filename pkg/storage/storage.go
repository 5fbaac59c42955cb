// Package storage provides blob storage for dataset files and logos.
// A filesystem backend serves development and single-node deployments;
// an S3 backend serves shared deployments.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/JaimeStill/dataset-lab/pkg/lifecycle"
)

// System defines blob storage operations.
type System interface {
	// Store saves data at key, overwriting existing contents.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	Start(lc *lifecycle.Coordinator) error
}

// New builds the System selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendFilesystem:
		return NewFilesystem(cfg, logger)
	case BackendS3:
		return NewS3(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// CleanKey normalizes key to a slash-separated relative path.
// Empty keys, absolute keys and keys that escape the root are rejected with ErrInvalidKey.
func CleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	key = strings.ReplaceAll(key, "\\", "/")
	if strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}
