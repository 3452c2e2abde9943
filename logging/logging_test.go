// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"ERROR", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitConsoleOnly(t *testing.T) {
	restore := zap.L()
	defer zap.ReplaceGlobals(restore)

	var buf bytes.Buffer
	logger, err := Init(Config{Level: "warn", Console: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Same(t, logger, zap.L())
}

func TestInitWritesFile(t *testing.T) {
	restore := zap.L()
	defer zap.ReplaceGlobals(restore)

	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := Init(Config{Dir: dir, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	logger.Info("response stored", zap.String("id", "r1"))
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"response stored"`)
	assert.Contains(t, string(data), `"id":"r1"`)
}

func TestInitBadLevel(t *testing.T) {
	_, err := Init(Config{Level: "chatty"})
	assert.Error(t, err)
}
