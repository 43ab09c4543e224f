package models

import (
	"strings"
	"time"
)

type SearchMode string

const (
	ModeAward SearchMode = "award"
	ModeCash  SearchMode = "cash"
)

func (m SearchMode) Valid() bool {
	return m == ModeAward || m == ModeCash
}

// SearchParams are the fixed query a report is produced for. They are passed
// explicitly through every stage.
type SearchParams struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Passengers  int    `json:"passengers"`
	CabinClass  string `json:"cabin_class"`
}

// Validate checks required fields and fills defaults for the optional ones.
func (p *SearchParams) Validate() error {
	p.Origin = strings.ToUpper(strings.TrimSpace(p.Origin))
	p.Destination = strings.ToUpper(strings.TrimSpace(p.Destination))
	p.Date = strings.TrimSpace(p.Date)

	if p.Origin == "" {
		return ErrMissingOrigin
	}
	if p.Destination == "" {
		return ErrMissingDestination
	}
	if p.Origin == p.Destination {
		return ErrSameOriginDestination
	}
	if p.Date == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return ErrInvalidDate
	}
	if p.Passengers <= 0 {
		p.Passengers = 1
	}
	if p.CabinClass == "" {
		p.CabinClass = "economy"
	}
	p.CabinClass = strings.ToLower(p.CabinClass)
	return nil
}

// WithDefaults fills empty fields of p from defaults.
func (p SearchParams) WithDefaults(defaults SearchParams) SearchParams {
	if p.Origin == "" {
		p.Origin = defaults.Origin
	}
	if p.Destination == "" {
		p.Destination = defaults.Destination
	}
	if p.Date == "" {
		p.Date = defaults.Date
	}
	if p.Passengers <= 0 {
		p.Passengers = defaults.Passengers
	}
	if p.CabinClass == "" {
		p.CabinClass = defaults.CabinClass
	}
	return p
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrSameOriginDestination ValidationError = "origin and destination must differ"
	ErrMissingDate           ValidationError = "date is required"
	ErrInvalidDate           ValidationError = "date must be formatted as YYYY-MM-DD"
)
