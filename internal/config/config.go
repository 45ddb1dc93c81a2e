package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/robert-malhotra/go-resdata/resdata"
)

// ErrInvalid is returned for settings outside their allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the tool settings.
type Config struct {
	Tolerance float64 `hcl:"tolerance,optional"`
	Workers   int     `hcl:"workers,optional"`
	CacheDir  string  `hcl:"cache_dir,optional"`
	LogLevel  string  `hcl:"log_level,optional"`
	LogFormat string  `hcl:"log_format,optional"`
	Output    *Output `hcl:"output,block"`
}

// Output controls how converted keyword files are written.
type Output struct {
	Formatted   bool   `hcl:"formatted,optional"`
	Compression string `hcl:"compression,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Tolerance: 1e-6,
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  "info",
		LogFormat: "text",
		Output:    &Output{Compression: "none"},
	}
}

// Load reads the HCL file at path on top of the defaults.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file, path)
}

// Parse reads configuration from HCL source. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*Config, error) {
	cfg := Default()
	output := cfg.Output
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}
	if cfg.Output == nil {
		cfg.Output = output
	}
	if cfg.Output.Compression == "" {
		cfg.Output.Compression = "none"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %g is negative", ErrInvalid, c.Tolerance)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q, want text or json", ErrInvalid, c.LogFormat)
	}
	if c.Output != nil {
		if _, err := c.Output.CompressionMode(); err != nil {
			return err
		}
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
}

// CompressionMode maps the compression setting to the codec's option.
func (o *Output) CompressionMode() (resdata.Compression, error) {
	switch strings.ToLower(o.Compression) {
	case "none", "":
		return resdata.CompressionNone, nil
	case "gzip":
		return resdata.CompressionGzip, nil
	case "zstd":
		return resdata.CompressionZstd, nil
	case "snappy":
		return resdata.CompressionSnappy, nil
	default:
		return resdata.CompressionNone, fmt.Errorf("%w: compression %q", ErrInvalid, o.Compression)
	}
}
