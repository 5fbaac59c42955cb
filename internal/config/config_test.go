package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/pkg/storage"
)

const baseConfig = `
version = "1.2.0"

[server]
port = 9000

[database]
name = "datasets"
user = "lab"

[storage]
base_path = "/var/lib/dataset-lab"

[thumbnails]
max_logo_size = "250KB"
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", baseConfig)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", cfg.Version)
	}
	if cfg.Server.Addr() != "0.0.0.0:9000" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:9000", cfg.Server.Addr())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Storage.Backend != storage.BackendFilesystem {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, storage.BackendFilesystem)
	}
	if cfg.Thumbnails.LogoSizeLimit() != 250000 {
		t.Errorf("Thumbnails.LogoSizeLimit() = %d, want 250000", cfg.Thumbnails.LogoSizeLimit())
	}
	if cfg.Thumbnails.Size != 48 {
		t.Errorf("Thumbnails.Size = %d, want 48", cfg.Thumbnails.Size)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want /api", cfg.API.BasePath)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
}

func TestLoadFrom_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.test.toml", `
[server]
port = 9100

[cache]
enabled = true
addr = "redis:6379"

[thumbnails]
size = 96
`)

	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Addr != "redis:6379" {
		t.Errorf("Cache = %+v, want enabled at redis:6379", cfg.Cache)
	}
	if cfg.Thumbnails.Size != 96 {
		t.Errorf("Thumbnails.Size = %d, want 96", cfg.Thumbnails.Size)
	}
	if cfg.Thumbnails.LogoSizeLimit() != 250000 {
		t.Errorf("Thumbnails.LogoSizeLimit() = %d, want 250000", cfg.Thumbnails.LogoSizeLimit())
	}
	if cfg.Database.Name != "datasets" {
		t.Errorf("Database.Name = %q, want datasets", cfg.Database.Name)
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", baseConfig)

	t.Setenv("THUMBNAILS_MAX_LOGO_SIZE", "1MB")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("STORAGE_S3_BUCKET", "datasets")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9200")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Thumbnails.LogoSizeLimit() != 1000000 {
		t.Errorf("Thumbnails.LogoSizeLimit() = %d, want 1000000", cfg.Thumbnails.LogoSizeLimit())
	}
	if cfg.Storage.Backend != storage.BackendS3 || cfg.Storage.S3.Bucket != "datasets" {
		t.Errorf("Storage = %+v, want s3 bucket datasets", cfg.Storage)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200", cfg.Server.Port)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[server\nport = 1"},
		{"missing database name", "[database]\nuser = \"lab\"\n"},
		{"invalid port", "[server]\nport = 70000\n[database]\nname = \"d\"\nuser = \"u\"\n"},
		{"invalid logo size", "[database]\nname = \"d\"\nuser = \"u\"\n[thumbnails]\nmax_logo_size = \"large\"\n"},
		{"invalid shutdown timeout", "shutdown_timeout = \"soon\"\n[database]\nname = \"d\"\nuser = \"u\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", tt.content)

			if _, err := config.LoadFrom(path); err == nil {
				t.Error("LoadFrom() succeeded, want error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := config.LoadFrom(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("LoadFrom() succeeded, want error")
		}
	})
}
