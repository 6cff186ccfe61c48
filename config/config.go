package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Proxy    ProxyConfig    `yaml:"proxy"`
	Database DatabaseConfig `yaml:"database"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type ProxyConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

// Load reads the yaml config file (a missing file is fine), applies
// environment overrides, and validates the result. Configuration is resolved
// once at startup and immutable afterwards.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Backend: "relay"},
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SCHOOL_PROXY_URL"); v != "" {
		cfg.Proxy.URL = v
	}
	if v := os.Getenv("SCHOOL_API_KEY"); v != "" {
		cfg.Proxy.APIKey = v
	}
	if v := os.Getenv("SCHOOL_BACKEND"); v != "" {
		cfg.Database.Backend = v
	}
	if v := os.Getenv("SCHOOL_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SCHOOL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SCHOOL_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	return nil
}

func validate(cfg *Config) error {
	switch cfg.Database.Backend {
	case "relay":
		if cfg.Proxy.URL == "" {
			return fmt.Errorf("proxy url is required for the relay backend")
		}
	case "mysql", "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("dsn is required for the %s backend", cfg.Database.Backend)
		}
	default:
		return fmt.Errorf("unsupported backend: %s", cfg.Database.Backend)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	return nil
}
