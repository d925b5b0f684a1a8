package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/forecast-summary/internal/client"
	"github.com/kjstillabower/forecast-summary/internal/validation"
)

const DefaultAPITimeout = 10 * time.Second

// DefaultCities is the city list used when neither env nor YAML sets one.
var DefaultCities = []string{"Toronto", "Kitchener", "Ottawa"}

// Config holds the utility's configuration loaded from .env, YAML and env.
type Config struct {
	WeatherAPIKey     string
	WeatherAPIURL     string
	WeatherAPITimeout time.Duration

	Cities []string

	MetricsTextfile string
}

type fileConfig struct {
	WeatherAPI struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"weather_api"`

	Cities []string `yaml:"cities"`

	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

// Load reads .env (if present), then config/{ENV_NAME}.yaml (default dev, optional),
// then env overrides. The API key comes from APPID and defaults to "".
// Call from project root.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom is Load with an explicit root directory.
func LoadFrom(root string) (*Config, error) {
	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	var fc fileConfig
	configPath := filepath.Join(root, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	cfg.WeatherAPIKey = strings.TrimSpace(os.Getenv("APPID"))

	cfg.WeatherAPIURL = strings.TrimSpace(os.Getenv("WEATHER_API_URL"))
	if cfg.WeatherAPIURL == "" {
		cfg.WeatherAPIURL = strings.TrimSpace(fc.WeatherAPI.URL)
	}
	if cfg.WeatherAPIURL == "" {
		cfg.WeatherAPIURL = client.DefaultForecastURL
	}
	cfg.WeatherAPITimeout = parseDurationOrZero(fc.WeatherAPI.Timeout, DefaultAPITimeout)

	cities := fc.Cities
	if raw := strings.TrimSpace(os.Getenv("FORECAST_CITIES")); raw != "" {
		cities = strings.Split(raw, ",")
	}
	if len(cities) == 0 {
		cities = DefaultCities
	}
	cfg.Cities, err = normalizeCities(cities)
	if err != nil {
		return nil, err
	}

	cfg.MetricsTextfile = strings.TrimSpace(os.Getenv("METRICS_TEXTFILE"))
	if cfg.MetricsTextfile == "" {
		cfg.MetricsTextfile = strings.TrimSpace(fc.Metrics.Textfile)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizeCities(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, c := range in {
		city, err := validation.ValidateCity(c, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("cities: %q: %w", c, err)
		}
		out = append(out, city)
	}
	return out, nil
}

// parseDurationOrZero parses a duration string, returning defaultVal on empty string or parse error.
// Returns zero or negative durations as-is (validate rejects them).
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	if cfg.WeatherAPITimeout <= 0 {
		return fmt.Errorf("weather_api.timeout must be positive")
	}
	if !strings.HasPrefix(cfg.WeatherAPIURL, "http://") && !strings.HasPrefix(cfg.WeatherAPIURL, "https://") {
		return fmt.Errorf("weather_api.url must be an http(s) URL, got %q", cfg.WeatherAPIURL)
	}
	return nil
}
