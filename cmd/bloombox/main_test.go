package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExitStatus(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{name: "help", args: []string{"--help"}, code: 0, stdout: "bloombox manages named Bloom filters"},
		{name: "bare", args: nil, code: 0, stdout: "Usage:"},
		{name: "unknown_command", args: []string{"frobnicate"}, code: 1, stderr: "Error: unknown command"},
		{name: "missing_config", args: []string{"--config", missing, "params"}, code: 1, stderr: "Error: "},
		{name: "bad_log_level", args: []string{"--log-level", "LOUD", "params"}, code: 1, stderr: "Error: validate flags"},
		{name: "ok", args: []string{"--store", t.TempDir(), "--log-level", "NOOP", "params", "-n", "100"}, code: 0, stdout: "959"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stdout, &stderr)
			require.Equal(t, tt.code, code, stderr.String())
			assert.Contains(t, stdout.String(), tt.stdout)
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}
}
