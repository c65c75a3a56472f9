package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvTitle       = "VIDQUIZ_TITLE"
	EnvLocale      = "VIDQUIZ_LOCALE"
	EnvOutputDir   = "VIDQUIZ_OUTPUT_DIR"
	EnvLogMode     = "VIDQUIZ_LOG_MODE"
	EnvLogLevel    = "VIDQUIZ_LOG_LEVEL"
	EnvPreviewAddr = "VIDQUIZ_PREVIEW_ADDR"
	EnvPreviewTick = "VIDQUIZ_PREVIEW_TICK_MS"
)

// Loaded is a resolved configuration and where it came from. Path is empty
// when defaults were used.
type Loaded struct {
	Config
	Path string
	Root string
}

// Load reads, parses, applies environment overrides to, and validates a
// config file. A .env file next to the project root is loaded first.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	if err := LoadEnvFile(RootFromConfigPath(path)); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads the config at path, or searches upward from startDir when
// path is empty. A missing config is not an error: defaults are used with
// environment overrides applied.
func Resolve(path, startDir string) (Loaded, error) {
	if strings.TrimSpace(path) == "" {
		found, err := FindConfigPath(startDir)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Loaded{}, err
		}
		path = found
	}
	if path == "" {
		root := startDir
		if root == "" {
			root = "."
		}
		cfg := Default()
		if err := LoadEnvFile(root); err != nil {
			return Loaded{}, err
		}
		if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
			return Loaded{}, err
		}
		if err := Validate(&cfg); err != nil {
			return Loaded{}, err
		}
		return Loaded{Config: cfg, Root: root}, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Loaded{}, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := Load(abs)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, Path: abs, Root: RootFromConfigPath(abs)}, nil
}

// Parse decodes a single YAML document over the defaults. Unknown fields are
// rejected and version must be given explicitly.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Version = 0
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Config{}, fmt.Errorf("parse config: empty document")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies VIDQUIZ_* overrides from lookup into cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	set := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	set(EnvTitle, &cfg.Title)
	set(EnvLocale, &cfg.Locale)
	set(EnvOutputDir, &cfg.OutputDir)
	set(EnvLogMode, &cfg.Log.Mode)
	set(EnvLogLevel, &cfg.Log.Level)
	set(EnvPreviewAddr, &cfg.Preview.Addr)
	if value, ok := lookup(EnvPreviewTick); ok && strings.TrimSpace(value) != "" {
		tick, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPreviewTick, err)
		}
		cfg.Preview.TickMS = tick
	}
	return nil
}
