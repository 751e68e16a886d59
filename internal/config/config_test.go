// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "autofuzz.yaml")

	cfg := Config{
		Version: 1,
		Generation: Generation{
			Seed:              ptr("abc"),
			ArrayLengthBounds: &genconfig.Range[int]{Min: 1, Max: 3},
		},
		Targets: map[string]Target{
			"users": {Schema: "schemas/user.yaml", Count: 5},
		},
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg, *loaded)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "valid config",
			cfg:     Config{Version: 1},
			wantErr: "",
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 99},
			wantErr: "unsupported config version",
		},
		{
			name: "invalid generation",
			cfg: Config{Version: 1, Generation: Generation{
				StringLengthBounds: &genconfig.Range[int]{Min: 4, Max: 2},
			}},
			wantErr: "generation",
		},
		{
			name:    "target without schema",
			cfg:     Config{Version: 1, Targets: map[string]Target{"users": {}}},
			wantErr: `target "users": schema is required`,
		},
		{
			name:    "negative count",
			cfg:     Config{Version: 1, Targets: map[string]Target{"users": {Schema: "u.yaml", Count: -1}}},
			wantErr: "count must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveFormat(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "autofuzz.yaml")

	cfg := Config{
		Version:    1,
		Generation: Generation{Seed: ptr("s")},
		Targets:    map[string]Target{"users": {Schema: "user.yaml"}},
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "seed: s")
	assert.Contains(t, output, "schema: user.yaml")
	assert.NotContains(t, output, "numberBounds")
	assert.NotContains(t, output, "count")
}

func TestConfig_Load(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, []string{"orders", "users"}, cfg.TargetNames())
	assert.Equal(t, 25, cfg.Targets["users"].CountOrDefault())
	assert.Equal(t, DefaultCount, cfg.Targets["orders"].CountOrDefault())
	assert.True(t, cfg.Targets["orders"].Strict)
	require.NoError(t, cfg.Validate())

	gen := cfg.Generation.Apply(genconfig.DefaultAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "fixtures", gen.RandomSeed)
	assert.True(t, gen.IntegerNumbersOnly)
	assert.Equal(t, genconfig.Range[float64]{Min: 0, Max: 1000}, gen.NumberBounds)
	assert.Equal(t, 2020, gen.DateBounds.Min.Year())
	assert.Equal(t, 0.5, gen.BooleanTrueOdds)
	assert.Equal(t, genconfig.Range[int]{Min: 0, Max: 1024}, gen.StringLengthBounds)
}

func TestGeneration_Overrides(t *testing.T) {
	assert.Empty(t, Generation{}.Overrides())

	g := Generation{
		Seed:               ptr("x"),
		IntegerNumbersOnly: ptr(false),
		NumberBounds:       &genconfig.Range[float64]{Min: -1, Max: 1},
		StringLengthBounds: &genconfig.Range[int]{Min: 1, Max: 2},
		ArrayLengthBounds:  &genconfig.Range[int]{Min: 3, Max: 4},
		DateBounds:         &genconfig.Range[time.Time]{Min: time.Unix(0, 0).UTC(), Max: time.Unix(10, 0).UTC()},
		BooleanTrueOdds:    ptr(0.25),
	}
	assert.Len(t, g.Overrides(), 7)

	got := g.Apply(genconfig.Default())
	assert.Equal(t, 0.25, got.BooleanTrueOdds)
	assert.Equal(t, genconfig.Range[int]{Min: 3, Max: 4}, got.ArrayLengthBounds)
}

func TestConfig_Load_NotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestConfig_Save_InvalidPath(t *testing.T) {
	cfg := Config{Version: 1}

	err := cfg.Save("/nonexistent/directory/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	emptyFile := filepath.Join(tmpDir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyFile, []byte(""), 0o600))

	_, err := Load(emptyFile)
	assert.Error(t, err)
}
