package commands

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightvalue/internal/cache"
	"github.com/dharmasatrya/flightvalue/internal/config"
	"github.com/dharmasatrya/flightvalue/internal/handler"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves value reports over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reportCache, err := newCache(cfg.Cache)
		if err != nil {
			return err
		}
		defer reportCache.Close()

		store, err := openArchive(cfg.Archive)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}

		var reports handler.Archive
		if store != nil {
			defer store.Close()
			reports = store
		}

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Logger())
		e.Use(middleware.Recover())
		e.Use(middleware.CORS())
		e.Use(middleware.RequestID())

		h := handler.NewReportHandler(newOrchestrator(cfg), reportCache, reports, cfg.SearchParams())
		h.Register(e)

		slog.Info("starting flightvalue server", "port", cfg.Server.Port)
		return e.Start(":" + cfg.Server.Port)
	},
}

func newCache(cfg config.CacheConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		slog.Info("cache disabled")
		return cache.NewNoOpCache(), nil
	}
	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Host: cfg.RedisHost,
		Port: cfg.RedisPort,
		TTL:  cfg.TTLDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	slog.Info("redis cache enabled", "host", cfg.RedisHost, "port", cfg.RedisPort, "ttl", cfg.TTLDuration())
	return redisCache, nil
}
