// Package config loads iconport settings from a YAML file, the environment
// and a .env file. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/iconport/pkg/codegen"
	"github.com/gnana997/iconport/pkg/convert"
	"github.com/gnana997/iconport/pkg/util"
)

// DefaultFile is looked up in the working directory when no --config is
// given.
const DefaultFile = ".iconport.yaml"

// Environment variables overriding the file.
const (
	EnvInputDir  = "ICONPORT_INPUT_DIR"
	EnvOutputDir = "ICONPORT_OUTPUT_DIR"
	EnvWorkers   = "ICONPORT_WORKERS"
	EnvStrict    = "ICONPORT_STRICT"
	EnvLogLevel  = "ICONPORT_LOG_LEVEL"
)

// Config holds every setting.
type Config struct {
	InputDir     string   `yaml:"input_dir"`
	OutputDir    string   `yaml:"output_dir"`
	Include      []string `yaml:"include"`
	Exclude      []string `yaml:"exclude"`
	Workers      int      `yaml:"workers"`
	Strict       bool     `yaml:"strict"`
	CompatImport string   `yaml:"compat_import"`
	DefaultSize  int      `yaml:"default_size"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	MCPLog       string   `yaml:"mcp_log"`
	DebounceMs   int      `yaml:"debounce_ms"`
	CacheSize    int      `yaml:"cache_size"`

	// BaseDir anchors relative paths: the config file's directory, or the
	// working directory when there is no file.
	BaseDir string `yaml:"-"`
	// Source is the file the config was read from, "" for defaults.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputDir:     "icons/react",
		OutputDir:    "icons/solid",
		Include:      append([]string(nil), convert.DefaultInclude...),
		Exclude:      append([]string(nil), convert.DefaultExclude...),
		CompatImport: codegen.DefaultCompatImport,
		DefaultSize:  codegen.DefaultSize,
		LogLevel:     string(util.LevelInfo),
		LogFormat:    string(util.FormatText),
		DebounceMs:   int(convert.DefaultDebounce / time.Millisecond),
		CacheSize:    convert.DefaultCacheSize,
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.BaseDir = wd
		return cfg, nil
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.Source = abs
	cfg.BaseDir = filepath.Dir(abs)
	return cfg, nil
}

// LoadDotEnv loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from the environment. lookup is usually
// os.LookupEnv. Relative directories resolve against the working directory,
// like the matching flags; only file values resolve against BaseDir.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookupTrimmed(lookup, EnvInputDir); ok {
		abs, err := filepath.Abs(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvInputDir, v, err)
		}
		c.InputDir = abs
	}
	if v, ok := lookupTrimmed(lookup, EnvOutputDir); ok {
		abs, err := filepath.Abs(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvOutputDir, v, err)
		}
		c.OutputDir = abs
	}
	if v, ok := lookupTrimmed(lookup, EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	if v, ok := lookupTrimmed(lookup, EnvStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStrict, v, err)
		}
		c.Strict = b
	}
	if v, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Resolve makes the directory and log paths absolute against BaseDir.
func (c *Config) Resolve() {
	c.InputDir = c.resolvePath(c.InputDir)
	c.OutputDir = c.resolvePath(c.OutputDir)
	if c.MCPLog != "" {
		c.MCPLog = c.resolvePath(c.MCPLog)
	}
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var problems []string
	if c.InputDir == "" {
		problems = append(problems, "input_dir is empty")
	}
	if c.OutputDir == "" {
		problems = append(problems, "output_dir is empty")
	}
	if c.Workers < 0 {
		problems = append(problems, "workers must be >= 0")
	}
	if c.DefaultSize <= 0 {
		problems = append(problems, "default_size must be > 0")
	}
	if c.DebounceMs < 0 {
		problems = append(problems, "debounce_ms must be >= 0")
	}
	if c.CacheSize < 0 {
		problems = append(problems, "cache_size must be >= 0")
	}
	switch util.LogFormat(c.LogFormat) {
	case util.FormatText, util.FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("log_format %q is not text or json", c.LogFormat))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ConvertOptions returns the converter settings.
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		InputDir:     c.InputDir,
		OutputDir:    c.OutputDir,
		Include:      c.Include,
		Exclude:      c.Exclude,
		Workers:      c.Workers,
		Strict:       c.Strict,
		CompatImport: c.CompatImport,
		DefaultSize:  c.DefaultSize,
	}
}

// WatchOptions returns the watcher settings.
func (c *Config) WatchOptions() convert.WatchOptions {
	return convert.WatchOptions{
		Debounce:  time.Duration(c.DebounceMs) * time.Millisecond,
		CacheSize: c.CacheSize,
	}
}

// LoggerConfig returns the logger settings; output stays on stderr.
func (c *Config) LoggerConfig() util.LoggerConfig {
	return util.LoggerConfig{
		Level:  util.ParseLogLevel(c.LogLevel),
		Format: util.LogFormat(c.LogFormat),
		Output: os.Stderr,
	}
}
