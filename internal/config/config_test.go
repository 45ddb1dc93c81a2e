package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-resdata/resdata"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.GreaterOrEqual(t, cfg.Workers, 1)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParse(t *testing.T) {
	src := `
tolerance  = 0.001
workers    = 3
cache_dir  = "/tmp/fb"
log_level  = "debug"
log_format = "json"

output {
  formatted   = true
  compression = "zstd"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, 0.001, cfg.Tolerance)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "/tmp/fb", cfg.CacheDir)
	assert.Equal(t, "json", cfg.LogFormat)
	require.NotNil(t, cfg.Output)
	assert.True(t, cfg.Output.Formatted)

	mode, err := cfg.Output.CompressionMode()
	require.NoError(t, err)
	assert.Equal(t, resdata.CompressionZstd, mode)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`workers = 2`), "partial.hcl")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NotNil(t, cfg.Output)
	assert.False(t, cfg.Output.Formatted)
	assert.Equal(t, "none", cfg.Output.Compression)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `tolerance = `},
		{"unknown attribute", `colour = "blue"`},
		{"wrong type", `workers = "many"`},
		{"negative tolerance", `tolerance = -1`},
		{"zero workers", `workers = 0`},
		{"bad level", `log_level = "loud"`},
		{"bad format", `log_format = "xml"`},
		{"bad compression", "output {\n  compression = \"lz4\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnose.hcl")
	require.NoError(t, os.WriteFile(path, []byte("tolerance = 0.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Tolerance)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
