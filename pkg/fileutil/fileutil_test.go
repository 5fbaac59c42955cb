package fileutil_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/dataset-lab/pkg/fileutil"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStreamToFile(t *testing.T) {
	dir := t.TempDir()

	path, size, err := fileutil.StreamToFile(strings.NewReader("logo bytes"), dir)
	if err != nil {
		t.Fatalf("StreamToFile() failed: %v", err)
	}
	defer os.Remove(path)

	if size != int64(len("logo bytes")) {
		t.Errorf("size = %d, want %d", size, len("logo bytes"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file: %v", err)
	}
	if string(data) != "logo bytes" {
		t.Errorf("contents = %q, want %q", data, "logo bytes")
	}
}

func TestStreamToFile_ReadErrorRemovesFile(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := fileutil.StreamToFile(failingReader{}, dir); err == nil {
		t.Fatal("StreamToFile() succeeded, want error")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("temp dir has %d entries, want 0", len(entries))
	}
}

func TestStreamToFile_NilReader(t *testing.T) {
	if _, _, err := fileutil.StreamToFile(nil, t.TempDir()); err == nil {
		t.Error("StreamToFile(nil) succeeded, want error")
	}
}

func TestWithTempFile_RemovesAfterCallback(t *testing.T) {
	dir := t.TempDir()
	var seen string

	err := fileutil.WithTempFile(strings.NewReader("abc"), dir, func(path string, size int64) error {
		seen = path
		if size != 3 {
			t.Errorf("size = %d, want 3", size)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("temp file missing during callback: %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTempFile() failed: %v", err)
	}

	if _, err := os.Stat(seen); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after WithTempFile(), stat error = %v", err)
	}
}

func TestWithTempFile_PropagatesCallbackError(t *testing.T) {
	want := errors.New("too large")

	err := fileutil.WithTempFile(strings.NewReader("abc"), t.TempDir(), func(string, int64) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("WithTempFile() error = %v, want %v", err, want)
	}
}
