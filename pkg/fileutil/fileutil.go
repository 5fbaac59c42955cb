// Package fileutil manages short-lived temporary files for streamed uploads.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// StreamToFile copies r into a new temporary file in dir and returns its path
// and size. An empty dir selects os.TempDir. The caller owns the file.
func StreamToFile(r io.Reader, dir string) (string, int64, error) {
	if r == nil {
		return "", 0, errors.New("nil reader")
	}

	f, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("write temp file: %w", err)
	}

	return path, n, nil
}

// WithTempFile streams r into a temporary file, calls fn with its path and size,
// and removes the file once fn returns.
func WithTempFile(r io.Reader, dir string, fn func(path string, size int64) error) error {
	path, size, err := StreamToFile(r, dir)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	return fn(path, size)
}
