package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

const DefaultFile = "flightvalue.json5"

const (
	ScraperModeFile   = "file"
	ScraperModeRemote = "remote"
)

type Config struct {
	Search   SearchConfig   `json:"search"`
	Scraper  ScraperConfig  `json:"scraper"`
	Output   OutputConfig   `json:"output"`
	Cache    CacheConfig    `json:"cache"`
	Archive  ArchiveConfig  `json:"archive"`
	Server   ServerConfig   `json:"server"`
	Fallback FallbackConfig `json:"fallback"`
	Verbose  bool           `json:"verbose"`
}

type SearchConfig struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Passengers  int    `json:"passengers"`
	CabinClass  string `json:"cabin_class"`
}

type ScraperConfig struct {
	Mode       string `json:"mode"`
	Dir        string `json:"dir"`
	URL        string `json:"url"`
	Token      string `json:"token"`
	Timeout    string `json:"timeout"`
	MaxRetries int    `json:"max_retries"`
	RetryDelay string `json:"retry_delay"`
	// Rate is the per-mode request rate in requests per second; 0 disables
	// limiting.
	Rate float64 `json:"rate"`
}

type OutputConfig struct {
	Dir     string `json:"dir"`
	Primary string `json:"primary"`
	Alias   string `json:"alias"`
}

type CacheConfig struct {
	Enabled   bool   `json:"enabled"`
	RedisHost string `json:"redis_host"`
	RedisPort string `json:"redis_port"`
	TTL       string `json:"ttl"`
}

type ArchiveConfig struct {
	Path string `json:"path"`
}

type ServerConfig struct {
	Port string `json:"port"`
}

type FallbackConfig struct {
	Seed     int64 `json:"seed"`
	Variance bool  `json:"variance"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Origin:      "LAX",
			Destination: "JFK",
			Date:        "2025-12-15",
			Passengers:  1,
			CabinClass:  "economy",
		},
		Scraper: ScraperConfig{
			Mode:       ScraperModeFile,
			Dir:        "captures",
			Timeout:    "5m",
			MaxRetries: 3,
			RetryDelay: "5s",
		},
		Output: OutputConfig{
			Dir:     "output",
			Primary: "flight_report.json",
			Alias:   "output.json",
		},
		Cache: CacheConfig{
			RedisHost: "localhost",
			RedisPort: "6379",
			TTL:       "1h",
		},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load builds the configuration from defaults, the file at path, its
// "<name>.local.<ext>" sibling and finally the environment. Missing files are
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		doc, err := readLayered(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := decodeOnto(&cfg, doc); err != nil {
				return cfg, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.validate()
}

// readLayered merges the base file and its local sibling as raw documents, so
// an explicit false or 0 in the local file still overrides the base.
func readLayered(path string) (map[string]any, error) {
	out := map[string]any{}
	found := false

	base, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", path, err)
		}
		found = true
	}

	local := localPath(path)
	overrides, err := os.ReadFile(local)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(overrides) > 0 {
		override := map[string]any{}
		if err := json5.Unmarshal(overrides, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", local, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", local)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// decodeOnto only touches the fields present in doc.
func decodeOnto(cfg *Config, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, cfg)
}

func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func applyEnv(cfg *Config) {
	cfg.Search.Origin = getEnv("ORIGIN", cfg.Search.Origin)
	cfg.Search.Destination = getEnv("DESTINATION", cfg.Search.Destination)
	cfg.Search.Date = getEnv("DATE", cfg.Search.Date)
	cfg.Search.Passengers = getEnvInt("PASSENGERS", cfg.Search.Passengers)
	cfg.Search.CabinClass = getEnv("CABIN_CLASS", cfg.Search.CabinClass)

	cfg.Scraper.Mode = getEnv("SCRAPER_MODE", cfg.Scraper.Mode)
	cfg.Scraper.Dir = getEnv("SCRAPER_DIR", cfg.Scraper.Dir)
	cfg.Scraper.URL = getEnv("SCRAPER_URL", cfg.Scraper.URL)
	cfg.Scraper.MaxRetries = getEnvInt("MAX_RETRIES", cfg.Scraper.MaxRetries)
	cfg.Scraper.RetryDelay = getEnv("RETRY_DELAY", cfg.Scraper.RetryDelay)

	cfg.Output.Dir = getEnv("OUTPUT_DIR", cfg.Output.Dir)

	cfg.Cache.Enabled = getEnvBool("CACHE_ENABLED", cfg.Cache.Enabled)
	cfg.Cache.RedisHost = getEnv("REDIS_HOST", cfg.Cache.RedisHost)
	cfg.Cache.RedisPort = getEnv("REDIS_PORT", cfg.Cache.RedisPort)
	cfg.Cache.TTL = getEnv("REDIS_TTL", cfg.Cache.TTL)

	cfg.Archive.Path = getEnv("ARCHIVE_PATH", cfg.Archive.Path)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)

	cfg.Fallback.Seed = int64(getEnvInt("FALLBACK_SEED", int(cfg.Fallback.Seed)))
	cfg.Fallback.Variance = getEnvBool("FALLBACK_VARIANCE", cfg.Fallback.Variance)
}

func (c Config) validate() error {
	switch c.Scraper.Mode {
	case ScraperModeFile, ScraperModeRemote:
	default:
		return fmt.Errorf("unknown scraper mode %q", c.Scraper.Mode)
	}
	if c.Scraper.Mode == ScraperModeRemote && c.Scraper.URL == "" {
		return errors.New("scraper url is required in remote mode")
	}
	for name, value := range map[string]string{
		"scraper.timeout":     c.Scraper.Timeout,
		"scraper.retry_delay": c.Scraper.RetryDelay,
		"cache.ttl":           c.Cache.TTL,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (c Config) SearchParams() models.SearchParams {
	return models.SearchParams{
		Origin:      c.Search.Origin,
		Destination: c.Search.Destination,
		Date:        c.Search.Date,
		Passengers:  c.Search.Passengers,
		CabinClass:  c.Search.CabinClass,
	}
}

func (s ScraperConfig) TimeoutDuration() time.Duration {
	return parseDuration(s.Timeout, 5*time.Minute)
}

func (s ScraperConfig) RetryDelayDuration() time.Duration {
	return parseDuration(s.RetryDelay, 5*time.Second)
}

func (c CacheConfig) TTLDuration() time.Duration {
	return parseDuration(c.TTL, time.Hour)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
