package models

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RawObservation is the loosely typed field bag a results page yields for
// one flight row. Any field may be empty; Text holds the whole row when the
// scraper could not split it.
type RawObservation struct {
	Flight    string `json:"flight,omitempty"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
	Points    string `json:"points,omitempty"`
	Cash      string `json:"cash,omitempty"`
	Fees      string `json:"fees,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Stops     string `json:"stops,omitempty"`
	Text      string `json:"text,omitempty"`
}

const unknownTime = "TBD"

var (
	awardPricePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*K\s*\+\s*\$\s*(\d+(?:\.\d+)?)`)
	dollarPattern     = regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`)
	numberPattern     = regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d+)?)\s*([Kk])?`)
	durationPattern   = regexp.MustCompile(`(?i)(\d+)\s*h\s*(\d+)\s*m`)
	rowTimePattern    = regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?:\s*[AP]\.?M\.?)?`)
	digitsPattern     = regexp.MustCompile(`\d+`)
)

// cash prices outside this window in free row text are badges, not fares
const (
	minRowCashUSD = 100
	maxRowCashUSD = 2000
)

// ToRecord converts the observation into a FlightRecord. Fields that cannot
// be parsed fall back to safe defaults; this never fails. index is the row
// position and names flights whose number could not be read.
func (o RawObservation) ToRecord(index int) FlightRecord {
	in := FlightInput{
		FlightNumber:  o.flightNumber(index),
		DepartureTime: o.Departure,
		ArrivalTime:   o.Arrival,
	}

	rowTimes := rowTimePattern.FindAllString(o.Text, 2)
	if strings.TrimSpace(in.DepartureTime) == "" {
		in.DepartureTime = unknownTime
		if len(rowTimes) >= 1 {
			in.DepartureTime = rowTimes[0]
		}
	}
	if strings.TrimSpace(in.ArrivalTime) == "" {
		in.ArrivalTime = unknownTime
		if len(rowTimes) >= 2 {
			in.ArrivalTime = rowTimes[1]
		}
	}

	points, fees := o.award()
	in.PointsRequired = points
	in.TaxesFeesUSD = fees
	in.CashPriceUSD = o.cash()

	if d := o.duration(); d != "" {
		in.Duration = &d
	}
	if s, ok := o.stops(); ok {
		in.Stops = &s
	}

	return NewFlightRecord(in)
}

func ToRecords(observations []RawObservation) []FlightRecord {
	records := make([]FlightRecord, 0, len(observations))
	for i, o := range observations {
		records = append(records, o.ToRecord(i))
	}
	return records
}

func (o RawObservation) flightNumber(index int) string {
	if strings.TrimSpace(o.Flight) != "" {
		return o.Flight
	}
	if m := flightNumberPattern.FindStringSubmatch(o.Text); m != nil {
		return m[1] + m[2]
	}
	return fmt.Sprintf("AA%d", index+1)
}

func (o RawObservation) award() (int, *float64) {
	var points int
	var fees *float64

	if m := awardPricePattern.FindStringSubmatch(o.Points); m != nil {
		points, fees = parseAwardMatch(m)
	} else if strings.TrimSpace(o.Points) != "" {
		points = int(math.Round(parseAmount(o.Points, "points")))
	} else if m := awardPricePattern.FindStringSubmatch(o.Text); m != nil {
		points, fees = parseAwardMatch(m)
	}

	if strings.TrimSpace(o.Fees) != "" {
		if v, ok := firstNumber(o.Fees); ok {
			fees = &v
		} else {
			malformed("fees", o.Fees)
		}
	}
	return points, fees
}

func parseAwardMatch(m []string) (int, *float64) {
	var points int
	if k, err := strconv.ParseFloat(m[1], 64); err == nil {
		points = int(math.Round(k * 1000))
	}
	var fees *float64
	if f, err := strconv.ParseFloat(m[2], 64); err == nil {
		fees = &f
	}
	return points, fees
}

func (o RawObservation) cash() float64 {
	if strings.TrimSpace(o.Cash) != "" {
		return parseAmount(o.Cash, "cash")
	}
	for _, m := range dollarPattern.FindAllStringSubmatch(o.Text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if v >= minRowCashUSD && v <= maxRowCashUSD {
			return v
		}
	}
	return 0
}

func (o RawObservation) duration() string {
	src := o.Duration
	if strings.TrimSpace(src) == "" {
		src = o.Text
	}
	m := durationPattern.FindStringSubmatch(src)
	if m == nil {
		if strings.TrimSpace(o.Duration) != "" {
			return strings.TrimSpace(o.Duration)
		}
		return ""
	}
	return m[1] + "h " + m[2] + "m"
}

func (o RawObservation) stops() (int, bool) {
	if s := strings.TrimSpace(o.Stops); s != "" {
		if strings.Contains(strings.ToLower(s), "nonstop") {
			return 0, true
		}
		if d := digitsPattern.FindString(s); d != "" {
			n, err := strconv.Atoi(d)
			if err == nil {
				return n, true
			}
		}
		malformed("stops", s)
		return 0, false
	}
	if o.Text == "" {
		return 0, false
	}
	if strings.Contains(strings.ToLower(o.Text), "nonstop") {
		return 0, true
	}
	return 1, true
}

// parseAmount reads "15,000", "15K", "$179.00" and similar. Unparsable input
// yields 0.
func parseAmount(s, field string) float64 {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		malformed(field, s)
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		malformed(field, s)
		return 0
	}
	if strings.EqualFold(m[2], "K") {
		v *= 1000
	}
	return v
}

func firstNumber(s string) (float64, bool) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func malformed(field, value string) {
	slog.Debug("malformed observation field, using default", "field", field, "value", value)
}
