package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightvalue/internal/output"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of reports to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [-n 20]",
	Short: "Lists archived reports, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openArchive(cfg.Archive)
		if err != nil {
			return err
		}
		if store == nil {
			return errors.New("no archive configured; set archive.path or ARCHIVE_PATH")
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		output.PrintHistory(os.Stdout, entries)
		return nil
	},
}
