package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	errInvalidPort        = errors.New("config: invalid PORT number")
	errUploadOutOfRange   = errors.New("config: MAX_UPLOAD_MB must be 1-500")
	errInvalidAnalyzerURL = errors.New("config: ANALYZER_URL must be an absolute http(s) URL")
	errInvalidRunBaseURL  = errors.New("config: RUN_BASE_URL must be an absolute http(s) URL when set")
)

// Config holds all application configuration. Values come from built-in
// defaults, then the optional YAML file, then environment variables,
// later sources winning.
type Config struct {
	Port        string
	LogLevel    string
	LogJSON     bool
	Title       string
	AnalyzerURL string
	RunBaseURL  string
	MaxUploadMB int
	APIKey      string
}

// fileConfig is the optional YAML file layout.
type fileConfig struct {
	App struct {
		Title       string `yaml:"title"`
		AnalyzerURL string `yaml:"analyzer_url"`
		RunBaseURL  string `yaml:"run_base_url"`
		MaxUploadMB int    `yaml:"max_upload_mb"`
		APIKey      string `yaml:"api_key"`
	} `yaml:"app"`
	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`
}

// Load reads configuration with sensible defaults. The YAML file named
// by CONFIG_PATH may be missing; a local .env file is picked up first as
// a convenience for development runs.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        "8080",
		LogLevel:    "INFO",
		Title:       "Ad ZIP Validator",
		AnalyzerURL: "http://localhost:5000",
		MaxUploadMB: 25,
	}

	if err := applyFile(&cfg, getEnv("CONFIG_PATH", "config.yaml")); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	return cfg, cfg.validate()
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.App.Title != "" {
		cfg.Title = fc.App.Title
	}
	if fc.App.AnalyzerURL != "" {
		cfg.AnalyzerURL = fc.App.AnalyzerURL
	}
	if fc.App.RunBaseURL != "" {
		cfg.RunBaseURL = fc.App.RunBaseURL
	}
	if fc.App.MaxUploadMB != 0 {
		cfg.MaxUploadMB = fc.App.MaxUploadMB
	}
	if fc.App.APIKey != "" {
		cfg.APIKey = fc.App.APIKey
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	if fc.Log.JSON {
		cfg.LogJSON = true
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogJSON = getEnvAsBool("LOG_JSON", cfg.LogJSON)
	cfg.Title = getEnv("APP_TITLE", cfg.Title)
	cfg.AnalyzerURL = getEnv("ANALYZER_URL", cfg.AnalyzerURL)
	cfg.RunBaseURL = getEnv("RUN_BASE_URL", cfg.RunBaseURL)
	cfg.MaxUploadMB = getEnvAsInt("MAX_UPLOAD_MB", cfg.MaxUploadMB)
	cfg.APIKey = getEnv("API_KEY", cfg.APIKey)
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.MaxUploadMB < 1 || c.MaxUploadMB > 500 {
		return fmt.Errorf("%w: got %d", errUploadOutOfRange, c.MaxUploadMB)
	}

	if !absHTTPURL(c.AnalyzerURL) {
		return fmt.Errorf("%w: %q", errInvalidAnalyzerURL, c.AnalyzerURL)
	}

	// An empty run base means run links stay relative, for deployments
	// that put this gateway and the scan service behind one origin.
	if c.RunBaseURL != "" && !absHTTPURL(c.RunBaseURL) {
		return fmt.Errorf("%w: %q", errInvalidRunBaseURL, c.RunBaseURL)
	}

	return nil
}

func absHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
