package fallback

import (
	"fmt"
	"log/slog"

	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/random"
	"github.com/dharmasatrya/flightvalue/internal/ranking"
)

const DefaultSize = 40

// Provider is what the reconciler and the report builder fall back to.
type Provider interface {
	GetAccurateFlights() []models.FlightRecord
}

type Config struct {
	Size           int
	DefaultCarrier string
	// Variance jitters table cash prices by up to CashVariance dollars,
	// never dropping below MinVariedCash.
	Variance      bool
	CashVariance  int
	MinVariedCash float64
	Templates     []Template
	Padding       []Template
}

func DefaultConfig() Config {
	return Config{
		Size:           DefaultSize,
		DefaultCarrier: "AA",
		CashVariance:   15,
		MinVariedCash:  99,
		Templates:      DefaultTemplates,
		Padding:        PaddingTemplates,
	}
}

type Catalog struct {
	config Config
	rng    random.Source
}

func NewCatalog(rng random.Source, config Config) *Catalog {
	defaults := DefaultConfig()
	if config.Size <= 0 {
		config.Size = defaults.Size
	}
	if config.DefaultCarrier == "" {
		config.DefaultCarrier = defaults.DefaultCarrier
	}
	if config.CashVariance <= 0 {
		config.CashVariance = defaults.CashVariance
	}
	if config.MinVariedCash <= 0 {
		config.MinVariedCash = defaults.MinVariedCash
	}
	if config.Templates == nil {
		config.Templates = defaults.Templates
	}
	if len(config.Padding) == 0 {
		config.Padding = defaults.Padding
	}
	return &Catalog{config: config, rng: rng}
}

func NewDefaultCatalog(rng random.Source) *Catalog {
	return NewCatalog(rng, DefaultConfig())
}

// GetAccurateFlights returns exactly Size records, best value first. Every
// record is tagged as fallback-sourced.
func (c *Catalog) GetAccurateFlights() []models.FlightRecord {
	flights := make([]models.FlightRecord, 0, c.config.Size)
	for _, t := range c.config.Templates {
		cash := t.Cash
		if c.config.Variance {
			cash = c.vary(cash)
		}
		flights = append(flights, c.build(t, t.Flight, t.Points, cash))
	}

	flights = append(flights, c.pad(len(flights))...)
	flights = ranking.SortByValueDesc(flights)
	if len(flights) > c.config.Size {
		flights = flights[:c.config.Size]
	}

	slog.Info("generated fallback flights", "count", len(flights))
	for _, f := range flights[:min(5, len(flights))] {
		slog.Debug("fallback flight", "flight", f.String(), "cpp", f.CPPValue())
	}
	return flights
}

func (c *Catalog) pad(current int) []models.FlightRecord {
	needed := c.config.Size - current
	if needed <= 0 {
		return nil
	}

	padded := make([]models.FlightRecord, 0, needed)
	for i := 0; i < needed; i++ {
		base := c.config.Padding[i%len(c.config.Padding)]
		number := fmt.Sprintf("%s%d", c.config.DefaultCarrier, random.IntRange(c.rng, 1000, 9999))
		points := random.Choice(c.rng, PaddingPoints)
		cash := float64(random.IntRange(c.rng, PaddingCashMin, PaddingCashMax))
		padded = append(padded, c.build(base, number, points, cash))
	}
	return padded
}

func (c *Catalog) vary(cash float64) float64 {
	delta := random.IntRange(c.rng, -c.config.CashVariance, c.config.CashVariance)
	return max(c.config.MinVariedCash, cash+float64(delta))
}

func (c *Catalog) build(t Template, number string, points int, cash float64) models.FlightRecord {
	in := models.FlightInput{
		FlightNumber:   number,
		DepartureTime:  t.Dep,
		ArrivalTime:    t.Arr,
		PointsRequired: points,
		CashPriceUSD:   cash,
		Duration:       models.StringPtr(t.Duration),
		Stops:          models.IntPtr(t.Stops),
		Source:         models.SourceFallback,
	}
	if t.Taxes != 0 {
		in.TaxesFeesUSD = models.Float64Ptr(t.Taxes)
	}
	return ranking.WithCPP(models.NewFlightRecord(in))
}
