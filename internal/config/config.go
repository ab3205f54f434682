// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/s0up4200/srtran-gateway/internal/gemini"
	"github.com/s0up4200/srtran-gateway/internal/prompt"
)

const envPrefix = "SRTRAN_GATEWAY_"

// Duration lets timeouts be written as "10s" in config files
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	ListenAddr     string   `toml:"listen_addr"`
	Path           string   `toml:"path"`
	Backend        string   `toml:"backend"`
	BaseURL        string   `toml:"base_url"`
	Model          string   `toml:"model"`
	Timeout        Duration `toml:"timeout"`
	TargetLanguage string   `toml:"target_language"`
	ChunkLimit     int      `toml:"chunk_limit"`
	LogLevel       string   `toml:"log_level"`
	// APIKey is only used by the translate command. HTTP callers send their own.
	APIKey string `toml:"api_key"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		ListenAddr:     ":8080",
		Path:           "/api/translate",
		Backend:        string(gemini.BackendREST),
		BaseURL:        gemini.DefaultBaseURL,
		Model:          gemini.DefaultModel,
		Timeout:        Duration{gemini.DefaultTimeout},
		TargetLanguage: prompt.DefaultLanguage,
		ChunkLimit:     5000,
		LogLevel:       "info",
	}
}

// configPaths returns a list of paths to check for config files
func configPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("could not get user home directory")
		home = ""
	}

	return []string{
		"config.toml",
		".srtran-gateway.toml",
		filepath.Join(home, ".config/srtran-gateway/config.toml"),
		filepath.Join(home, ".srtran-gateway.toml"),
	}
}

// LoadConfig loads defaults, then a config file, then .env, then the environment
func LoadConfig(configFile string) (*Config, error) {
	config := Default()

	if configFile != "" {
		if _, err := toml.DecodeFile(configFile, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range configPaths() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if _, err := toml.DecodeFile(path, config); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
			log.Debug().Str("path", path).Msg("loaded config file")
			break
		}
	}

	// a missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	if v := os.Getenv(envPrefix + "LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv(envPrefix + "PATH"); v != "" {
		c.Path = v
	}
	if v := os.Getenv(envPrefix + "BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(envPrefix + "BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv(envPrefix + "TIMEOUT"); v != "" {
		if err := c.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
	}
	if v := os.Getenv(envPrefix + "TARGET_LANGUAGE"); v != "" {
		c.TargetLanguage = v
	}
	if v := os.Getenv(envPrefix + "CHUNK_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCHUNK_LIMIT: %w", envPrefix, err)
		}
		c.ChunkLimit = n
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	return nil
}

// Validate rejects settings the server can't start with
func (c *Config) Validate() error {
	switch gemini.Backend(c.Backend) {
	case gemini.BackendREST, gemini.BackendGenAI:
	default:
		return fmt.Errorf("unsupported backend: %q", c.Backend)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Path == "" || c.Path[0] != '/' {
		return fmt.Errorf("path must start with '/', got %q", c.Path)
	}
	return nil
}

// GeneratorOptions returns the upstream client settings
func (c *Config) GeneratorOptions() gemini.Options {
	return gemini.Options{
		Backend: gemini.Backend(c.Backend),
		BaseURL: c.BaseURL,
		Model:   c.Model,
		Timeout: c.Timeout.Duration,
	}
}
