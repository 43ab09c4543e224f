package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTaxesFeesUSD is the carrier minimum charged on award tickets.
const DefaultTaxesFeesUSD = 5.60

type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

var (
	flightNumberPattern = regexp.MustCompile(`\b([A-Z]{2})\s*(\d{1,4})\b`)
	timePattern         = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})(?:\s*([AP])\.?M\.?)?`)
)

// FlightRecord is a single normalized pricing observation. Records are
// values: components that change pricing build a new record instead of
// mutating the one they were handed.
type FlightRecord struct {
	FlightNumber   string   `json:"flight_number"`
	DepartureTime  string   `json:"departure_time"`
	ArrivalTime    string   `json:"arrival_time"`
	PointsRequired int      `json:"points_required"`
	CashPriceUSD   float64  `json:"cash_price_usd"`
	TaxesFeesUSD   float64  `json:"taxes_fees_usd"`
	CPP            *float64 `json:"cpp,omitempty"`
	Duration       *string  `json:"duration,omitempty"`
	Stops          *int     `json:"stops,omitempty"`
	Source         Source   `json:"source"`
	CashEstimated  bool     `json:"cash_estimated,omitempty"`
}

// FlightInput carries the raw text a FlightRecord is built from.
type FlightInput struct {
	FlightNumber   string
	DepartureTime  string
	ArrivalTime    string
	PointsRequired int
	CashPriceUSD   float64
	TaxesFeesUSD   *float64
	Duration       *string
	Stops          *int
	Source         Source
}

// NewFlightRecord is the only place normalization runs.
func NewFlightRecord(in FlightInput) FlightRecord {
	fees := DefaultTaxesFeesUSD
	if in.TaxesFeesUSD != nil {
		fees = *in.TaxesFeesUSD
	}

	source := in.Source
	if source == "" {
		source = SourceLive
	}

	points := in.PointsRequired
	if points < 0 {
		points = 0
	}
	cash := in.CashPriceUSD
	if cash < 0 {
		cash = 0
	}

	return FlightRecord{
		FlightNumber:   NormalizeFlightNumber(in.FlightNumber),
		DepartureTime:  NormalizeTime(in.DepartureTime),
		ArrivalTime:    NormalizeTime(in.ArrivalTime),
		PointsRequired: points,
		CashPriceUSD:   cash,
		TaxesFeesUSD:   fees,
		Duration:       in.Duration,
		Stops:          in.Stops,
		Source:         source,
	}
}

// NormalizeFlightNumber extracts "<carrier><digits>", e.g. "AA 28" -> "AA28".
// Input without a carrier-code pattern is returned unchanged.
func NormalizeFlightNumber(s string) string {
	m := flightNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return m[1] + m[2]
}

// NormalizeTime extracts an H:MM or HH:MM time and renders it as 24-hour
// HH:MM. A trailing AM/PM marker is folded in. Input without a time pattern
// is returned unchanged.
func NormalizeTime(s string) string {
	if s == "" {
		return s
	}
	trimmed := strings.TrimSpace(s)

	m := timePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return s
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return s
	}
	switch strings.ToUpper(m[3]) {
	case "A":
		if hour == 12 {
			hour = 0
		}
	case "P":
		if hour < 12 {
			hour += 12
		}
	}
	return fmt.Sprintf("%02d:%s", hour, m[2])
}

// IsComplete reports whether both an award and a cash price are known.
func (f FlightRecord) IsComplete() bool {
	return f.PointsRequired > 0 && f.CashPriceUSD > 0
}

func (f FlightRecord) IsFallback() bool {
	return f.Source == SourceFallback
}

// CPPValue returns the computed CPP or 0 when it has not been computed.
func (f FlightRecord) CPPValue() float64 {
	if f.CPP == nil {
		return 0
	}
	return *f.CPP
}

func (f FlightRecord) String() string {
	return fmt.Sprintf("%s %s->%s %dpts $%.2f (+$%.2f)",
		f.FlightNumber, f.DepartureTime, f.ArrivalTime,
		f.PointsRequired, f.CashPriceUSD, f.TaxesFeesUSD)
}

// SearchResult holds the two unmerged observation lists of one search.
type SearchResult struct {
	AwardFlights []FlightRecord
	CashFlights  []FlightRecord
	Params       SearchParams
}

func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func Float64Ptr(f float64) *float64 { return &f }
