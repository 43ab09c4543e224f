package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

func sampleReport() models.Report {
	return models.Report{
		SearchMetadata: models.SearchMetadata{Origin: "LAX", Destination: "JFK", Date: "2025-12-15", Passengers: 1, CabinClass: "economy"},
		Flights: []models.ReportFlight{
			{FlightNumber: "AA3", DepartureTime: "08:00", ArrivalTime: "16:28", PointsRequired: 10000, CashPriceUSD: 305.6, TaxesFeesUSD: 5.6, CPP: 3},
			{FlightNumber: "AA1", DepartureTime: "09:00", ArrivalTime: "17:31", PointsRequired: 15000, CashPriceUSD: 179, TaxesFeesUSD: 5.6, CPP: 1.16},
		},
		TotalResults: 2,
		Source:       models.SourceLive,
	}
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	at := time.Date(2025, 12, 1, 14, 30, 5, 0, time.UTC)
	w := NewWriter(WriterConfig{Dir: dir}).WithClock(func() time.Time { return at })

	paths, err := w.Write(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "flight_report.json"),
		filepath.Join(dir, "output.json"),
		filepath.Join(dir, "flight_report_20251201_143005.json"),
	}, paths)

	want, err := Encode(sampleReport())
	require.NoError(t, err)
	for _, p := range paths {
		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), p)
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(sampleReport())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("{\n  \"search_metadata\": {\n    \"origin\": \"LAX\"")))
	assert.NotContains(t, string(data), "source")

	var decoded models.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.TotalResults)

	empty, err := Encode(models.Report{})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"flights": []`)
}

func TestWriterCustomNames(t *testing.T) {
	w := NewWriter(WriterConfig{Dir: "reports", PrimaryName: "lax_jfk.json", AliasName: "latest.json"})
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, []string{
		filepath.Join("reports", "lax_jfk.json"),
		filepath.Join("reports", "latest.json"),
		filepath.Join("reports", "lax_jfk_20250102_030405.json"),
	}, w.Paths(at))
}
