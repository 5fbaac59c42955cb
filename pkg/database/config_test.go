package database_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/dataset-lab/pkg/database"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &database.Config{Name: "datasets", User: "lab"}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want %q", cfg.Host, "localhost")
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d, want 5432", cfg.Port)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, want %q", cfg.SSLMode, "disable")
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("ConnTimeoutDuration() = %v, want 5s", cfg.ConnTimeoutDuration())
	}
}

func TestConfig_Finalize_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
	}{
		{"missing name", database.Config{User: "lab"}},
		{"missing user", database.Config{Name: "datasets"}},
		{"bad lifetime", database.Config{Name: "datasets", User: "lab", ConnMaxLifetime: "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestConfig_Finalize_EnvOverride(t *testing.T) {
	t.Setenv("TEST_DATABASE_PORT", "6543")
	t.Setenv("TEST_DATABASE_AUTO_MIGRATE", "true")

	cfg := &database.Config{Name: "datasets", User: "lab"}
	env := &database.Env{Port: "TEST_DATABASE_PORT", AutoMigrate: "TEST_DATABASE_AUTO_MIGRATE"}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Port != 6543 {
		t.Errorf("Port = %d, want 6543", cfg.Port)
	}
	if !cfg.AutoMigrate {
		t.Error("AutoMigrate = false, want true")
	}
}

func TestConfig_URL(t *testing.T) {
	cfg := &database.Config{
		Host: "db", Port: 5432, Name: "datasets", User: "lab", Password: "p@ss", SSLMode: "disable",
	}

	got := cfg.URL()

	if !strings.HasPrefix(got, "pgx5://lab:p%40ss@db:5432/datasets") {
		t.Errorf("URL() = %q, want escaped pgx5 URL", got)
	}
	if !strings.HasSuffix(got, "sslmode=disable") {
		t.Errorf("URL() = %q, want sslmode query", got)
	}
}

func TestConfig_Merge(t *testing.T) {
	base := &database.Config{Host: "localhost", Name: "datasets"}
	base.Merge(&database.Config{Host: "db.internal", Port: 6000})

	if base.Host != "db.internal" {
		t.Errorf("Host = %q, want %q", base.Host, "db.internal")
	}
	if base.Port != 6000 {
		t.Errorf("Port = %d, want 6000", base.Port)
	}
	if base.Name != "datasets" {
		t.Errorf("Name = %q, want %q", base.Name, "datasets")
	}
}
