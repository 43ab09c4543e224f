package report

import (
	"log/slog"
	"sort"

	"github.com/dharmasatrya/flightvalue/internal/fallback"
	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/ranking"
)

type Builder struct {
	catalog fallback.Provider
}

func NewBuilder(catalog fallback.Provider) *Builder {
	return &Builder{catalog: catalog}
}

// Build turns merged records into the ranked report, best value first.
// When no record is complete the fallback catalog is used instead.
func (b *Builder) Build(records []models.FlightRecord, params models.SearchParams) models.Report {
	complete := FilterComplete(records)
	if len(complete) == 0 {
		slog.Info("no complete flights, loading fallback catalog", "records", len(records))
		complete = b.catalog.GetAccurateFlights()
	}

	flights := make([]models.ReportFlight, 0, len(complete))
	for _, f := range complete {
		flights = append(flights, present(f))
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].CPP > flights[j].CPP
	})

	return models.Report{
		SearchMetadata: models.NewSearchMetadata(params),
		Flights:        flights,
		TotalResults:   len(flights),
		Source:         sourceOf(complete),
	}
}

func FilterComplete(records []models.FlightRecord) []models.FlightRecord {
	result := make([]models.FlightRecord, 0, len(records))
	for _, f := range records {
		if f.IsComplete() {
			result = append(result, f)
		}
	}
	return result
}

func present(f models.FlightRecord) models.ReportFlight {
	taxes := f.TaxesFeesUSD
	if taxes == 0 {
		taxes = models.DefaultTaxesFeesUSD
	}
	cpp := ranking.ComputeCPP(f.CashPriceUSD, taxes, f.PointsRequired)

	return models.ReportFlight{
		FlightNumber:   f.FlightNumber,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		PointsRequired: f.PointsRequired,
		CashPriceUSD:   ranking.Round2(f.CashPriceUSD),
		TaxesFeesUSD:   ranking.Round2(taxes),
		CPP:            ranking.Round2(cpp),
	}
}

func sourceOf(flights []models.FlightRecord) models.Source {
	for _, f := range flights {
		if f.IsFallback() {
			return models.SourceFallback
		}
	}
	return models.SourceLive
}
