package commands

import (
	"log/slog"
	"time"

	"github.com/dharmasatrya/flightvalue/internal/archive"
	"github.com/dharmasatrya/flightvalue/internal/config"
	"github.com/dharmasatrya/flightvalue/internal/fallback"
	"github.com/dharmasatrya/flightvalue/internal/orchestrator"
	"github.com/dharmasatrya/flightvalue/internal/providers"
	"github.com/dharmasatrya/flightvalue/internal/random"
	"github.com/dharmasatrya/flightvalue/internal/ratelimit"
	"github.com/dharmasatrya/flightvalue/internal/reconcile"
	"github.com/dharmasatrya/flightvalue/internal/report"
)

func newProvider(cfg config.ScraperConfig) providers.Provider {
	if cfg.Mode == config.ScraperModeRemote {
		return providers.NewRemoteProvider(providers.RemoteConfig{
			BaseURL: cfg.URL,
			Timeout: cfg.TimeoutDuration(),
			Token:   cfg.Token,
		})
	}
	return providers.NewFileProvider(cfg.Dir, providers.DefaultPageSelectors())
}

func newLimiter(cfg config.ScraperConfig) *ratelimit.ModeLimiter {
	if cfg.Mode == config.ScraperModeFile || cfg.Rate <= 0 {
		return ratelimit.Unlimited()
	}
	return ratelimit.NewModeLimiter(ratelimit.Config{RequestsPerSecond: cfg.Rate, BurstSize: 1})
}

func newOrchestrator(cfg config.Config) *orchestrator.Orchestrator {
	rng := random.FromSeed(cfg.Fallback.Seed)

	catalogConfig := fallback.DefaultConfig()
	catalogConfig.Variance = cfg.Fallback.Variance
	catalog := fallback.NewCatalog(rng, catalogConfig)

	provider := newProvider(cfg.Scraper)
	slog.Debug("pipeline wired", "provider", provider.Name(), "seed", cfg.Fallback.Seed, "variance", cfg.Fallback.Variance)

	return orchestrator.New(
		provider,
		reconcile.NewReconciler(catalog, rng),
		report.NewBuilder(catalog),
		orchestrator.Config{
			Timeout:     cfg.Scraper.TimeoutDuration(),
			MaxRetries:  cfg.Scraper.MaxRetries,
			RetryDelays: []time.Duration{cfg.Scraper.RetryDelayDuration()},
			RateLimiter: newLimiter(cfg.Scraper),
		},
	)
}

// openArchive returns nil when no archive path is configured.
func openArchive(cfg config.ArchiveConfig) (*archive.Store, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	return archive.Open(cfg.Path)
}
