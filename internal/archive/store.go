package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

//go:embed schema.sql
var Schema string

// Store keeps every generated report with its provenance.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path. Use
// ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, report models.Report, at time.Time) (int64, error) {
	document, err := json.Marshal(report)
	if err != nil {
		return 0, err
	}

	var bestCPP float64
	if best, ok := report.Best(); ok {
		bestCPP = best.CPP
	}

	meta := report.SearchMetadata
	res, err := s.db.ExecContext(ctx,
		`insert into reports (origin, destination, date, passengers, cabin_class, source, total_results, best_cpp, document, created_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Origin, meta.Destination, meta.Date, meta.Passengers, meta.CabinClass,
		string(report.Source), report.TotalResults, bestCPP, string(document), at.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns the newest entries first.
func (s *Store) List(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`select id, origin, destination, date, passengers, cabin_class, source, total_results, best_cpp, created_at
		from reports order by created_at desc, id desc limit ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		var source string
		err := rows.Scan(
			&e.ID,
			&e.Search.Origin, &e.Search.Destination, &e.Search.Date,
			&e.Search.Passengers, &e.Search.CabinClass,
			&source, &e.TotalResults, &e.BestCPP, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.Source = models.Source(source)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (models.Report, error) {
	var document, source string
	err := s.db.QueryRowContext(ctx, `select document, source from reports where id = ?`, id).Scan(&document, &source)
	if err != nil {
		return models.Report{}, err
	}

	var report models.Report
	if err := json.Unmarshal([]byte(document), &report); err != nil {
		return models.Report{}, err
	}
	report.Source = models.Source(source)
	return report, nil
}
