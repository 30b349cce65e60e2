package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "success.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-email", "Ana@Example.com", "-name", "Ana", "-password", "secret1", "-db", dbPath}
	err := run(args, new(bytes.Buffer), stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "User ana@example.com created successfully")
	assert.FileExists(t, dbPath)
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duplicate.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	args := []string{"-email", "ana@example.com", "-name", "Ana", "-password", "secret1", "-db", dbPath}

	require.NoError(t, run(args, new(bytes.Buffer), stdout, stderr), "first run should succeed")

	err := run(args, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFlags(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-password", "secret1"}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "interactive.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	stdin := bytes.NewBufferString("typed_secret\n")

	err := run([]string{"-email", "luis@example.com", "-name", "Luis", "-db", dbPath}, stdin, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User luis@example.com created successfully")
}

func TestRun_RejectsWeakPassword(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{"empty", "\n", "password cannot be empty"},
		{"too short", "abc\n", "at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "weak.db")
			err := run([]string{"-email", "x@example.com", "-name", "X", "-db", dbPath},
				bytes.NewBufferString(tt.stdin), new(bytes.Buffer), new(bytes.Buffer))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_InvalidDBPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "gastos.db")

	err := run([]string{"-email", "x@example.com", "-name", "X", "-password", "secret1", "-db", dbPath},
		new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
}
