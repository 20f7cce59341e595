// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yosukefk/chemnetrowk-vis/config"
)

const sample = `
title = "olefins"
orient = true
ignored = ["STEAM"]
workers = 2

[[condense]]
id = "POLY"
members = ["PE", "PP"]

[[condense]]
id = "PROPYLENE"
members = ["PROPYLENE_CHEMGRADE", "PROPYLENE_POLYMERGRADE"]

[[cases]]
id = "base"
desc = "base year"
path = "base.json"

[[cases]]
id = "2030"
path = "/abs/2030.json"

[output]
format = "msgpack"
compression = "zstd"
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeFile(t, "run.toml", sample)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "olefins", cfg.Title)
	assert.True(t, cfg.Orient)
	assert.Equal(t, []string{"STEAM"}, cfg.Ignored)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, map[string][]string{
		"POLY":      {"PE", "PP"},
		"PROPYLENE": {"PROPYLENE_CHEMGRADE", "PROPYLENE_POLYMERGRADE"},
	}, cfg.CondenseMap())
	assert.Equal(t, "msgpack", cfg.Output.Format)
	assert.Equal(t, "zstd", cfg.Output.Compression)

	// untouched keys keep their defaults
	assert.Equal(t, 1.0, cfg.UnitConversion)
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)

	require.Len(t, cfg.Cases, 2)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "base.json"), cfg.Cases[0].Path)
	assert.Equal(t, "base year", cfg.Cases[0].Desc)
	assert.Equal(t, "/abs/2030.json", cfg.Cases[1].Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHEMNET_OUTPUT_FORMAT", "xlsx")
	t.Setenv("CHEMNET_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Cases)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	bad := writeFile(t, "bad.toml", "[output]\nformat = \"csv\"\n")
	_, err = config.Load(bad)
	require.ErrorIs(t, err, config.ErrInvalid)

	dup := writeFile(t, "dup.toml", "[[cases]]\nid = \"a\"\npath = \"x\"\n[[cases]]\nid = \"a\"\npath = \"y\"\n")
	_, err = config.Load(dup)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, config.Validate(cfg))

	cfg.UnitConversion = 0
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalid)

	cfg = config.Default()
	cfg.Workers = 0
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalid)

	cfg = config.Default()
	cfg.Cases = []config.Case{{ID: "a"}}
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalid)

	cfg = config.Default()
	cfg.Condense = []config.CondenseGroup{{ID: "G"}}
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalid)

	cfg = config.Default()
	cfg.Condense = []config.CondenseGroup{
		{ID: "G", Members: []string{"A"}},
		{ID: "G", Members: []string{"B"}},
	}
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalid)
	assert.Nil(t, config.Default().CondenseMap())
}

func TestSave_RoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Title = "saved"
	cfg.Ignored = []string{"STEAM"}
	cfg.Condense = []config.CondenseGroup{{ID: "G", Members: []string{"A", "B"}}}
	cfg.Cases = []config.Case{{ID: "base", Path: "/data/base.json"}}

	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, config.Save(path, cfg))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
