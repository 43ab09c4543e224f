package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightvalue/internal/config"
	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/output"
)

var runFlags models.SearchParams

func init() {
	runCmd.Flags().StringVar(&runFlags.Origin, "origin", "", "Origin airport code.")
	runCmd.Flags().StringVar(&runFlags.Destination, "destination", "", "Destination airport code.")
	runCmd.Flags().StringVar(&runFlags.Date, "date", "", "Departure date (YYYY-MM-DD).")
	runCmd.Flags().IntVar(&runFlags.Passengers, "passengers", 0, "Number of passengers.")
	runCmd.Flags().StringVar(&runFlags.CabinClass, "cabin", "", "Cabin class.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--origin LAX] [--destination JFK] [--date 2025-12-15]",
	Short: "Searches award and cash fares once and writes the value report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runOnce(cmd, cfg, runFlags.WithDefaults(cfg.SearchParams()))
	},
}

func runOnce(cmd *cobra.Command, cfg config.Config, params models.SearchParams) error {
	ctx := cmd.Context()

	started := time.Now()
	rep, err := newOrchestrator(cfg).Run(ctx, params)
	if err != nil {
		return err
	}

	writer := output.NewWriter(output.WriterConfig{
		Dir:         cfg.Output.Dir,
		PrimaryName: cfg.Output.Primary,
		AliasName:   cfg.Output.Alias,
	})
	paths, err := writer.Write(rep)
	if err != nil {
		return err
	}
	slog.Info("report written", "paths", paths, "elapsed", time.Since(started).Round(time.Millisecond))

	store, err := openArchive(cfg.Archive)
	if err != nil {
		slog.Warn("archive unavailable", "error", err)
	} else if store != nil {
		defer store.Close()
		if id, err := store.Save(ctx, rep, time.Now()); err != nil {
			slog.Warn("archive write failed", "error", err)
		} else {
			slog.Debug("report archived", "id", id)
		}
	}

	output.PrintSummary(os.Stdout, rep)
	return nil
}
