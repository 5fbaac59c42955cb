package main

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"up", "down", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

func TestRootCmd_MissingConfig(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"version", "--config", filepath.Join(t.TempDir(), "absent.toml")})

	if err := root.Execute(); err == nil {
		t.Error("Execute() succeeded without a config file, want error")
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"up", "extra"})

	if err := root.Execute(); err == nil {
		t.Error("Execute() accepted positional arguments, want error")
	}
}
