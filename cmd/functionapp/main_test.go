package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrimacro/internal/config"
	apperrors "nutrimacro/internal/errors"
	"nutrimacro/internal/infrastructure"
	"nutrimacro/internal/storage"
)

func TestRun_OnceStorageFailure(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "functionapp.log")
	t.Setenv(config.ConfigFileEnv, "")
	t.Setenv("NUTRI_LOGGING_OUTPUT", "file")
	t.Setenv("NUTRI_LOGGING_FILE_PATH", logPath)
	t.Setenv("NUTRI_TELEMETRY_METRIC_EXPORTER", "none")
	t.Setenv("NUTRI_PATHS_RESULTS_FILE", filepath.Join(dir, "results.json"))
	t.Setenv(config.DefaultConnectionStringEnv, "UseDevelopmentStorage=true")

	factory := func(string, config.StorageConfig) (storage.BlobStore, error) {
		return nil, apperrors.NewStorageError("account unreachable", nil)
	}

	var out bytes.Buffer
	code := run([]string{"-once"}, &out, factory)

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Failed to process nutritional data.")
	assert.Contains(t, string(data), "account unreachable")
	assert.NoFileExists(t, filepath.Join(dir, "results.json"))
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &out, nil))
}
