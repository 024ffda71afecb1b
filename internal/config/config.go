package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr     string        `yaml:"http_addr"`
	DBPath       string        `yaml:"db_path"`
	Sources      []string      `yaml:"sources"`
	DefaultCount int           `yaml:"default_count"`
	JWTSecret    string        `yaml:"jwt_secret"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	BaseDir      string        `yaml:"base_dir"`
}

// FromEnv builds a config from environment variables, falling back to
// defaults suitable for local development.
func FromEnv() Config {
	return Config{
		HTTPAddr:     envOr("ADDR", ":8080"),
		DBPath:       envOr("DB_PATH", "quiz.db"),
		Sources:      csvOr("QUIZ_SOURCES", "opentdb://?amount=10"),
		DefaultCount: envInt("QUIZ_COUNT", 10),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CORSOrigins:  csvOr("CORS_ORIGINS", "http://localhost:3000"),
		FetchTimeout: envDuration("FETCH_TIMEOUT", 10*time.Second),
		BaseDir:      os.Getenv("QUIZ_BASE_DIR"),
	}
}

// Load reads a YAML file on top of the environment defaults and validates the
// result. An empty path only validates the environment.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	Normalize(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Normalize(cfg *Config) {
	cfg.HTTPAddr = strings.TrimSpace(cfg.HTTPAddr)
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	cfg.Sources = trimAll(cfg.Sources)
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	if cfg.DefaultCount < 0 {
		cfg.DefaultCount = 0
	}
}

func Validate(cfg Config) error {
	var issues []string
	if cfg.FetchTimeout < 0 {
		issues = append(issues, "fetch_timeout must not be negative")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		issues = append(issues, "db_path is required")
	}
	if len(issues) > 0 {
		return errors.New("invalid config: " + strings.Join(issues, "; "))
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	return trimAll(strings.Split(envOr(k, def), ","))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
