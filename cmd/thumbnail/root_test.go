package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/internal/thumbnails"
)

type finder struct {
	ds *datasets.Dataset
}

func (f *finder) Find(_ context.Context, id uuid.UUID) (*datasets.Dataset, error) {
	if f.ds.ID != id {
		return nil, datasets.ErrNotFound
	}
	return f.ds, nil
}

// recorder captures the command it receives and answers with result.
type recorder struct {
	got    thumbnails.Command
	input  []byte
	result *datasets.Thumbnail
	err    error
}

func (r *recorder) Execute(_ context.Context, cmd thumbnails.Command) (*datasets.Thumbnail, error) {
	r.got = cmd
	if cmd.Input != nil {
		r.input, _ = io.ReadAll(cmd.Input)
	}
	return r.result, r.err
}

func (r *recorder) Stage(context.Context, *datasets.Dataset, io.Reader) (string, error) {
	return "", nil
}

func (r *recorder) Find(context.Context, *datasets.Dataset) (*datasets.Thumbnail, error) {
	return r.result, nil
}

func setup(t *testing.T) (*datasets.Dataset, *recorder, opener, *bool) {
	t.Helper()

	ds := &datasets.Dataset{ID: uuid.New()}
	rec := &recorder{}
	closed := false

	open := func(string) (*session, error) {
		return &session{
			datasets:   &finder{ds: ds},
			thumbnails: rec,
			close:      func() error { closed = true; return nil },
		}, nil
	}
	return ds, rec, open, &closed
}

func execute(open opener, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(open, &out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSelect(t *testing.T) {
	ds, rec, open, closed := setup(t)
	file := &files.DataFile{ID: uuid.New(), DatasetID: ds.ID}
	rec.result = &datasets.Thumbnail{DatasetID: ds.ID, Source: datasets.SourceFile, DataFile: file}

	out, err := execute(open, "select", "--dataset", ds.ID.String(), "--file", file.ID.String())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if rec.got.Intent != thumbnails.IntentSelectFile || rec.got.FileID == nil || *rec.got.FileID != file.ID {
		t.Errorf("command = %+v, want select of %s", rec.got, file.ID)
	}

	var printed datasets.Thumbnail
	if err := json.Unmarshal([]byte(out), &printed); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if printed.DataFile == nil || printed.DataFile.ID != file.ID {
		t.Errorf("printed file = %+v, want %s", printed.DataFile, file.ID)
	}
	if !*closed {
		t.Error("session not closed")
	}
}

func TestRemove_PrintsNull(t *testing.T) {
	ds, rec, open, _ := setup(t)

	out, err := execute(open, "remove", "-d", ds.ID.String())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if rec.got.Intent != thumbnails.IntentRemove {
		t.Errorf("Intent = %q, want %q", rec.got.Intent, thumbnails.IntentRemove)
	}
	if strings.TrimSpace(out) != "null" {
		t.Errorf("output = %q, want null", out)
	}
}

func TestUpload(t *testing.T) {
	ds, rec, open, _ := setup(t)
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, []byte("logo"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := execute(open, "upload", "-d", ds.ID.String(), path); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if rec.got.Intent != thumbnails.IntentUseUploadedImage {
		t.Errorf("Intent = %q, want %q", rec.got.Intent, thumbnails.IntentUseUploadedImage)
	}
	if string(rec.input) != "logo" {
		t.Errorf("input = %q, want logo", rec.input)
	}
}

func TestUpload_StagingKey(t *testing.T) {
	ds, rec, open, _ := setup(t)
	key := datasets.StagingKey(ds.ID)

	if _, err := execute(open, "upload", "-d", ds.ID.String(), "--staging-key", key); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if rec.got.StagingKey != key || rec.got.Input != nil {
		t.Errorf("command = %+v, want staging key %s without input", rec.got, key)
	}
}

func TestErrors(t *testing.T) {
	ds, rec, open, _ := setup(t)
	rec.err = thumbnails.ErrInconsistentState

	tests := []struct {
		name string
		args []string
	}{
		{"missing dataset flag", []string{"remove"}},
		{"invalid dataset id", []string{"remove", "-d", "nope"}},
		{"unknown dataset", []string{"remove", "-d", uuid.NewString()}},
		{"missing file flag", []string{"select", "-d", ds.ID.String()}},
		{"invalid file id", []string{"select", "-d", ds.ID.String(), "-f", "nope"}},
		{"upload without source", []string{"upload", "-d", ds.ID.String()}},
		{"upload with both sources", []string{"upload", "-d", ds.ID.String(), "-k", "staging/x/y", "logo.png"}},
		{"missing image file", []string{"upload", "-d", ds.ID.String(), filepath.Join(t.TempDir(), "absent.png")}},
		{"command failure", []string{"remove", "-d", ds.ID.String()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(open, tt.args...); err == nil {
				t.Errorf("Execute(%v) succeeded, want error", tt.args)
			}
		})
	}

	t.Run("command failure is surfaced", func(t *testing.T) {
		_, err := execute(open, "remove", "-d", ds.ID.String())
		if !errors.Is(err, thumbnails.ErrInconsistentState) {
			t.Errorf("Execute() error = %v, want ErrInconsistentState", err)
		}
	})
}
