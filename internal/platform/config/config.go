// Package config loads thrivehub settings from defaults, an optional YAML
// file and THRIVEHUB_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix       = "THRIVEHUB_"
	DefaultFileName = "thrivehub.yaml"
)

type Config struct {
	DataDir         string       `koanf:"data_dir"`
	ReflectionsPath string       `koanf:"reflections_file"`
	ProgressPath    string       `koanf:"progress_file"`
	QuotesPath      string       `koanf:"quotes_file"`
	DBPath          string       `koanf:"db_path"`
	Server          ServerConfig `koanf:"server"`
	Log             LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// sections are nested keys; everything else maps to a top-level key with
// underscores kept (THRIVEHUB_PROGRESS_FILE -> progress_file).
var sections = map[string]bool{"server": true, "log": true}

// Load resolves configuration for dataDir. An explicit configPath must
// exist; otherwise <dataDir>/thrivehub.yaml is read when present.
func Load(dataDir, configPath string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	k := koanf.New(".")

	path := configPath
	if path == "" {
		path = filepath.Join(dataDir, DefaultFileName)
	}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && configPath == "":
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) == 2 && sections[parts[0]] {
		return parts[0] + "." + parts[1]
	}
	return key
}

func applyDefaults(cfg *Config) {
	if cfg.ReflectionsPath == "" {
		cfg.ReflectionsPath = "reflections.csv"
	}
	if cfg.ProgressPath == "" {
		cfg.ProgressPath = "progress.json"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(".thrivehub", "thrivehub.db")
	}
	cfg.ReflectionsPath = resolve(cfg.DataDir, cfg.ReflectionsPath)
	cfg.ProgressPath = resolve(cfg.DataDir, cfg.ProgressPath)
	cfg.DBPath = resolve(cfg.DataDir, cfg.DBPath)
	if cfg.QuotesPath != "" {
		cfg.QuotesPath = resolve(cfg.DataDir, cfg.QuotesPath)
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8501
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Addr is the listen address for the web form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
