/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/texfigure/config"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	prevLevel := zerolog.GlobalLevel()
	prevFormat := zerolog.TimeFieldFormat
	prevLog := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		zerolog.TimeFieldFormat = prevFormat
		log.Logger = prevLog
		Logger = zerolog.Nop()
	})
}

func TestInit_JSON(t *testing.T) {
	resetGlobals(t)
	var buf bytes.Buffer

	_, err := InitWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	Logger.Info().Msg("hidden")
	Component("manager").Warn().Str("key", "velocity").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "manager", entry["component"])
	assert.Equal(t, "velocity", entry["key"])
	assert.Equal(t, "shown", entry["message"])
}

func TestInit_Console(t *testing.T) {
	resetGlobals(t)
	var buf bytes.Buffer

	_, err := InitWithWriter(config.LogConfig{Level: "info", Format: "console"}, &buf)
	require.NoError(t, err)

	log.Info().Msg("through the global logger")
	assert.Contains(t, buf.String(), "through the global logger")
	assert.Contains(t, buf.String(), "INF")
}

func TestInit_File(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "logs", "texfigure.log")

	closeFn, err := Init(config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	Logger.Info().Msg("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInit_Errors(t *testing.T) {
	resetGlobals(t)

	_, err := Init(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = Init(config.LogConfig{Output: "file"})
	assert.Error(t, err)
}
