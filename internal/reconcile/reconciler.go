package reconcile

import (
	"fmt"
	"log/slog"

	"github.com/dharmasatrya/flightvalue/internal/fallback"
	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/random"
	"github.com/dharmasatrya/flightvalue/internal/ranking"
)

// Cash prices drawn for award flights with no known points.
var EstimatedCashPrices = []float64{289, 329, 389, 449, 499, 549}

const (
	minCashPerPointCents = 1.5
	maxCashPerPointCents = 2.5
)

type MatchKind string

const (
	MatchFlightNumber  MatchKind = "flight_number"
	MatchDepartureTime MatchKind = "departure_time"
	MatchPosition      MatchKind = "position"
)

type Reconciler struct {
	catalog fallback.Provider
	rng     random.Source
}

func NewReconciler(catalog fallback.Provider, rng random.Source) *Reconciler {
	return &Reconciler{catalog: catalog, rng: rng}
}

// Reconcile merges award-priced and cash-priced observations into records
// carrying both prices, ordered worst value first. When nothing can be
// merged the fallback catalog is returned instead. It never fails; the
// input slices are not modified.
func (r *Reconciler) Reconcile(award, cash []models.FlightRecord) []models.FlightRecord {
	if len(award) > 0 || len(cash) > 0 {
		merged, err := r.safeMerge(award, cash)
		if err != nil {
			slog.Error("flight merge failed", "error", err)
		} else if len(merged) > 0 {
			slog.Info("merged flights", "award", len(award), "cash", len(cash), "merged", len(merged))
			return ranking.SortByValueAsc(merged)
		}
	}

	slog.Info("no mergeable flights, using fallback catalog", "award", len(award), "cash", len(cash))
	return r.catalog.GetAccurateFlights()
}

func (r *Reconciler) safeMerge(award, cash []models.FlightRecord) (merged []models.FlightRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			merged = nil
			err = fmt.Errorf("recovered from panic: %v", p)
		}
	}()

	switch {
	case len(award) > 0 && len(cash) > 0:
		return r.mergePairs(award, cash), nil
	case len(award) > 0:
		return r.synthesizeCash(award), nil
	default:
		return nil, nil
	}
}

func (r *Reconciler) mergePairs(award, cash []models.FlightRecord) []models.FlightRecord {
	merged := make([]models.FlightRecord, 0, len(award))
	for i, a := range award {
		c, kind, ok := FindMatch(a, i, cash)
		if !ok {
			slog.Debug("no cash match for award flight", "flight", a.FlightNumber)
			continue
		}
		if kind == MatchPosition {
			slog.Debug("paired flights by position", "award", a.FlightNumber, "cash", c.FlightNumber, "index", i)
		}
		merged = append(merged, mergeRecord(a, c.CashPriceUSD, false))
	}
	return merged
}

// FindMatch picks the cash record for the award record at index i:
// same flight number, else same departure time, else the cash record at
// the same position.
func FindMatch(a models.FlightRecord, i int, cash []models.FlightRecord) (models.FlightRecord, MatchKind, bool) {
	for _, c := range cash {
		if c.FlightNumber == a.FlightNumber {
			return c, MatchFlightNumber, true
		}
	}
	for _, c := range cash {
		if c.DepartureTime == a.DepartureTime {
			return c, MatchDepartureTime, true
		}
	}
	if i < len(cash) {
		return cash[i], MatchPosition, true
	}
	return models.FlightRecord{}, "", false
}

func (r *Reconciler) synthesizeCash(award []models.FlightRecord) []models.FlightRecord {
	merged := make([]models.FlightRecord, 0, len(award))
	for _, a := range award {
		var price float64
		if a.PointsRequired > 0 {
			rate := random.Uniform(r.rng, minCashPerPointCents, maxCashPerPointCents)
			price = ranking.Round2(float64(a.PointsRequired) * rate / 100)
		} else {
			price = random.Choice(r.rng, EstimatedCashPrices)
		}
		merged = append(merged, mergeRecord(a, price, true))
	}
	return merged
}

// mergeRecord builds a new record from the award side with the given cash
// price. The fields are already normalized so they are copied directly.
func mergeRecord(a models.FlightRecord, cashPrice float64, estimated bool) models.FlightRecord {
	return ranking.WithCPP(models.FlightRecord{
		FlightNumber:   a.FlightNumber,
		DepartureTime:  a.DepartureTime,
		ArrivalTime:    a.ArrivalTime,
		PointsRequired: a.PointsRequired,
		CashPriceUSD:   cashPrice,
		TaxesFeesUSD:   a.TaxesFeesUSD,
		Duration:       a.Duration,
		Stops:          a.Stops,
		Source:         a.Source,
		CashEstimated:  estimated,
	})
}
