package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Server struct {
	Port              string `json:"port" yaml:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
}

type Finnhub struct {
	APIKey     string `json:"api_key" yaml:"api_key"`
	BaseURL    string `json:"base_url" yaml:"base_url"`
	TimeoutSec int    `json:"timeout_sec" yaml:"timeout_sec"`
	UserAgent  string `json:"user_agent" yaml:"user_agent"`
}

type Config struct {
	Server  Server  `json:"server" yaml:"server"`
	Finnhub Finnhub `json:"finnhub" yaml:"finnhub"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15},
		Finnhub: Finnhub{
			BaseURL:    "https://finnhub.io/api/v1",
			TimeoutSec: 10,
			UserAgent:  "stocklookup/1.0",
		},
	}
}

// defaultPaths are probed in order when Load is given an empty path.
var defaultPaths = []string{"config.json", "config.yaml", "config.yml"}

// Load reads config from path, JSON or YAML by extension. If path is empty
// the default file names are probed; a missing file yields defaults.
// Environment variables override file values so the API key can stay out of it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := unmarshal(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func unmarshal(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

// Validate reports settings the lookup cannot run without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Finnhub.APIKey) == "" {
		errs = append(errs, errors.New("finnhub.api_key is required (FINNHUB_API_KEY)"))
	}
	if c.Finnhub.TimeoutSec <= 0 {
		errs = append(errs, errors.New("finnhub.timeout_sec must be positive"))
	}
	if c.Server.RequestTimeoutSec <= 0 {
		errs = append(errs, errors.New("server.request_timeout_sec must be positive"))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" { cfg.Finnhub.APIKey = v }
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" { cfg.Finnhub.BaseURL = v }
	if v := os.Getenv("FINNHUB_TIMEOUT_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Finnhub.TimeoutSec = x }
	}
	if v := os.Getenv("FINNHUB_USER_AGENT"); v != "" { cfg.Finnhub.UserAgent = v }
}
