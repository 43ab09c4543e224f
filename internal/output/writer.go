package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

const backupTimeLayout = "20060102_150405"

type WriterConfig struct {
	Dir         string
	PrimaryName string
	AliasName   string
}

func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		Dir:         "output",
		PrimaryName: "flight_report.json",
		AliasName:   "output.json",
	}
}

// Writer persists a report to the primary path, the compatibility alias and
// a timestamped backup next to the primary.
type Writer struct {
	config WriterConfig
	now    func() time.Time
}

func NewWriter(config WriterConfig) *Writer {
	defaults := DefaultWriterConfig()
	if config.Dir == "" {
		config.Dir = defaults.Dir
	}
	if config.PrimaryName == "" {
		config.PrimaryName = defaults.PrimaryName
	}
	if config.AliasName == "" {
		config.AliasName = defaults.AliasName
	}
	return &Writer{config: config, now: time.Now}
}

func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Paths returns the three destinations for a write happening at t.
func (w *Writer) Paths(t time.Time) []string {
	stem := strings.TrimSuffix(w.config.PrimaryName, filepath.Ext(w.config.PrimaryName))
	backup := fmt.Sprintf("%s_%s.json", stem, t.Format(backupTimeLayout))
	return []string{
		filepath.Join(w.config.Dir, w.config.PrimaryName),
		filepath.Join(w.config.Dir, w.config.AliasName),
		filepath.Join(w.config.Dir, backup),
	}
}

func (w *Writer) Write(report models.Report) ([]string, error) {
	data, err := Encode(report)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := w.Paths(w.now())
	for _, path := range paths {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return paths, nil
}

func Encode(report models.Report) ([]byte, error) {
	if report.Flights == nil {
		report.Flights = []models.ReportFlight{}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
