package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"devb-web/internal/common"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Validator ValidatorConfig `yaml:"validator"`
	Storage   StorageConfig   `yaml:"storage"`
	Renderer  RendererConfig  `yaml:"renderer"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// APIConfig holds the upstream endpoints the site reads from
type APIConfig struct {
	BaseURL             string        `yaml:"base_url"`
	APIKey              string        `yaml:"api_key"`
	GitHubURL           string        `yaml:"github_url"`
	ContributionsURL    string        `yaml:"contributions_url"`
	RSS2JSONURL         string        `yaml:"rss2json_url"`
	Timeout             time.Duration `yaml:"timeout"`
	CacheTTL            time.Duration `yaml:"cache_ttl"`
	LinkedInMaxAttempts int           `yaml:"linkedin_max_attempts"`
	LinkedInBackoff     time.Duration `yaml:"linkedin_backoff"`
}

// ValidatorConfig holds username validation settings
type ValidatorConfig struct {
	Debounce    time.Duration `yaml:"debounce"`
	SessionIdle time.Duration `yaml:"session_idle"`
}

// StorageConfig holds persistence settings
type StorageConfig struct {
	StateDBPath     string `yaml:"state_db_path"`
	JobsDatabaseURL string `yaml:"jobs_database_url"`
}

// RendererConfig holds PDF rendering settings
type RendererConfig struct {
	ChromePath string        `yaml:"chrome_path"`
	Attempts   int           `yaml:"attempts"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:     "3000",
			LogLevel: "info",
		},
		API: APIConfig{
			BaseURL:             "https://v2.devb.io",
			GitHubURL:           "https://api.github.com",
			ContributionsURL:    "https://github-contributions-api.jogruber.de",
			RSS2JSONURL:         "https://api.rss2json.com/v1/api.json",
			Timeout:             15 * time.Second,
			CacheTTL:            time.Hour,
			LinkedInMaxAttempts: 3,
			LinkedInBackoff:     time.Second,
		},
		Validator: ValidatorConfig{
			Debounce:    500 * time.Millisecond,
			SessionIdle: 10 * time.Minute,
		},
		Storage: StorageConfig{
			StateDBPath: "./devb-state.db",
		},
		Renderer: RendererConfig{
			Attempts: 3,
			Timeout:  60 * time.Second,
		},
	}
}

// Load reads an optional YAML file, overlays environment variables and validates.
// DEVB_CONFIG overrides path; an empty path skips the file.
func Load(path string) (Config, error) {
	if envPath := os.Getenv("DEVB_CONFIG"); envPath != "" {
		path = envPath
	}

	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", cfg.Server.LogLevel)

	cfg.API.BaseURL = getEnv("NEXT_PUBLIC_API_BASE_URL", cfg.API.BaseURL)
	cfg.API.BaseURL = getEnv("DEVB_API_BASE_URL", cfg.API.BaseURL)
	cfg.API.APIKey = getEnv("DEVB_API_KEY", cfg.API.APIKey)
	cfg.API.GitHubURL = getEnv("GITHUB_API_URL", cfg.API.GitHubURL)
	cfg.API.ContributionsURL = getEnv("CONTRIBUTIONS_API_URL", cfg.API.ContributionsURL)
	cfg.API.RSS2JSONURL = getEnv("RSS2JSON_URL", cfg.API.RSS2JSONURL)
	cfg.API.Timeout = getEnvAsDuration("API_TIMEOUT", cfg.API.Timeout)
	cfg.API.CacheTTL = getEnvAsDuration("CACHE_TTL", cfg.API.CacheTTL)
	cfg.API.LinkedInMaxAttempts = getEnvAsInt("LINKEDIN_MAX_ATTEMPTS", cfg.API.LinkedInMaxAttempts)
	cfg.API.LinkedInBackoff = getEnvAsDuration("LINKEDIN_BACKOFF", cfg.API.LinkedInBackoff)

	cfg.Validator.Debounce = getEnvAsDuration("VALIDATE_DEBOUNCE", cfg.Validator.Debounce)
	cfg.Validator.SessionIdle = getEnvAsDuration("VALIDATE_SESSION_IDLE", cfg.Validator.SessionIdle)

	cfg.Storage.StateDBPath = getEnv("STATE_DB_PATH", cfg.Storage.StateDBPath)
	cfg.Storage.JobsDatabaseURL = getEnv("JOBS_DATABASE_URL", cfg.Storage.JobsDatabaseURL)

	cfg.Renderer.ChromePath = getEnv("CHROME_PATH", cfg.Renderer.ChromePath)
	cfg.Renderer.Attempts = getEnvAsInt("RENDER_ATTEMPTS", cfg.Renderer.Attempts)
	cfg.Renderer.Timeout = getEnvAsDuration("RENDER_TIMEOUT", cfg.Renderer.Timeout)
}

// Validate checks that required fields are present and values are usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return common.NewAppError("CONFIG_ERROR", "PORT is required", common.ErrInvalidInput)
	}
	for name, raw := range map[string]string{
		"api.base_url":          c.API.BaseURL,
		"api.github_url":        c.API.GitHubURL,
		"api.contributions_url": c.API.ContributionsURL,
		"api.rss2json_url":      c.API.RSS2JSONURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return common.NewAppError("CONFIG_ERROR", fmt.Sprintf("%s must be an absolute URL, got %q", name, raw), common.ErrInvalidInput)
		}
	}
	if c.API.LinkedInMaxAttempts < 1 {
		return common.NewAppError("CONFIG_ERROR", "api.linkedin_max_attempts must be at least 1", common.ErrInvalidInput)
	}
	if c.Validator.Debounce <= 0 {
		return common.NewAppError("CONFIG_ERROR", "validator.debounce must be positive", common.ErrInvalidInput)
	}
	if c.Renderer.Attempts < 1 {
		return common.NewAppError("CONFIG_ERROR", "renderer.attempts must be at least 1", common.ErrInvalidInput)
	}
	return nil
}

// Warnings lists settings that are allowed but probably wrong.
func (c *Config) Warnings() []string {
	var w []string
	if strings.TrimSpace(c.API.APIKey) == "" {
		w = append(w, "DEVB_API_KEY is not set; Profile API requests will carry an empty X-Api-Key")
	}
	if c.Storage.JobsDatabaseURL == "" {
		w = append(w, "JOBS_DATABASE_URL is not set; generated resumes will not be recorded")
	}
	return w
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
