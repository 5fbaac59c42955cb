package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/dataset-lab/pkg/logging"
	"github.com/JaimeStill/dataset-lab/pkg/storage"
)

func newFilesystem(t *testing.T) (storage.System, string) {
	t.Helper()
	base := t.TempDir()
	sys, err := storage.NewFilesystem(&storage.Config{BasePath: base}, logging.Discard())
	if err != nil {
		t.Fatalf("NewFilesystem() failed: %v", err)
	}
	return sys, base
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"datasets/a/logo/original", "datasets/a/logo/original", false},
		{"staging//a/./b", "staging/a/b", false},
		{"staging\\a\\b", "staging/a/b", false},
		{"", "", true},
		{".", "", true},
		{"..", "", true},
		{"../etc/passwd", "", true},
		{"a/../../b", "", true},
		{"/abs/path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := storage.CleanKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, storage.ErrInvalidKey) {
					t.Errorf("CleanKey(%q) error = %v, want ErrInvalidKey", tt.key, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanKey(%q) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("CleanKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestFilesystem_RoundTrip(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()
	key := "datasets/abc/logo/original"

	if err := sys.Store(ctx, key, []byte("logo")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	ok, err := sys.Validate(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Validate() = %v, %v, want true, nil", ok, err)
	}

	data, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(data) != "logo" {
		t.Errorf("Retrieve() = %q, want %q", data, "logo")
	}

	if err := sys.Store(ctx, key, []byte("replaced")); err != nil {
		t.Fatalf("Store() overwrite failed: %v", err)
	}
	data, _ = sys.Retrieve(ctx, key)
	if string(data) != "replaced" {
		t.Errorf("Retrieve() after overwrite = %q, want %q", data, "replaced")
	}
}

func TestFilesystem_RetrieveMissing(t *testing.T) {
	sys, _ := newFilesystem(t)

	_, err := sys.Retrieve(context.Background(), "missing/key")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}

	ok, err := sys.Validate(context.Background(), "missing/key")
	if err != nil || ok {
		t.Errorf("Validate() = %v, %v, want false, nil", ok, err)
	}
}

func TestFilesystem_DeletePrunesEmptyDirectories(t *testing.T) {
	sys, base := newFilesystem(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "staging/ds/one", []byte("x")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	if err := sys.Delete(ctx, "staging/ds/one"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "staging")); !os.IsNotExist(err) {
		t.Errorf("staging directory still exists after delete, stat error = %v", err)
	}
	if _, err := os.Stat(base); err != nil {
		t.Errorf("base directory removed: %v", err)
	}

	if err := sys.Delete(ctx, "staging/ds/one"); err != nil {
		t.Errorf("Delete() of missing key = %v, want nil", err)
	}
}

func TestFilesystem_RejectsTraversal(t *testing.T) {
	sys, _ := newFilesystem(t)

	err := sys.Store(context.Background(), "../outside", []byte("x"))
	if !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("Store() error = %v, want ErrInvalidKey", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := storage.New(&storage.Config{Backend: "ftp"}, logging.Discard())
	if !errors.Is(err, storage.ErrUnknownBackend) {
		t.Errorf("New() error = %v, want ErrUnknownBackend", err)
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &storage.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() failed: %v", err)
		}
		if cfg.Backend != storage.BackendFilesystem {
			t.Errorf("Backend = %q, want %q", cfg.Backend, storage.BackendFilesystem)
		}
		if cfg.MaxUploadSizeBytes() != 100*1000*1000 {
			t.Errorf("MaxUploadSizeBytes() = %d, want %d", cfg.MaxUploadSizeBytes(), 100*1000*1000)
		}
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		cfg := &storage.Config{Backend: storage.BackendS3}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() succeeded, want error")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_BACKEND", "s3")
		t.Setenv("TEST_STORAGE_S3_BUCKET", "datasets")
		t.Setenv("TEST_STORAGE_S3_PATH_STYLE", "true")

		cfg := &storage.Config{}
		env := &storage.Env{
			Backend:     "TEST_STORAGE_BACKEND",
			S3Bucket:    "TEST_STORAGE_S3_BUCKET",
			S3PathStyle: "TEST_STORAGE_S3_PATH_STYLE",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() failed: %v", err)
		}
		if cfg.S3.Bucket != "datasets" || !cfg.S3.PathStyle {
			t.Errorf("S3 = %+v, want bucket datasets with path style", cfg.S3)
		}
		if cfg.S3.Region != "us-east-1" {
			t.Errorf("S3.Region = %q, want %q", cfg.S3.Region, "us-east-1")
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		cfg := &storage.Config{MaxUploadSize: "lots"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() succeeded, want error")
		}
	})
}
