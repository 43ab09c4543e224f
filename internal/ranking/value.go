package ranking

import (
	"math"
	"sort"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

// MissingCPPSortKey stands in for records without a positive CPP when
// ordering internal lists.
const MissingCPPSortKey = 999

// ComputeCPP returns the cents of cash value returned per point redeemed.
// Zero points yields 0. Negative results are kept as-is.
func ComputeCPP(cashPriceUSD, taxesFeesUSD float64, pointsRequired int) float64 {
	if pointsRequired <= 0 {
		return 0
	}
	return ((cashPriceUSD - taxesFeesUSD) / float64(pointsRequired)) * 100
}

// WithCPP returns a copy of f with CPP filled in when both prices are known.
// Incomplete records come back with CPP unset.
func WithCPP(f models.FlightRecord) models.FlightRecord {
	if !f.IsComplete() {
		f.CPP = nil
		return f
	}
	cpp := ComputeCPP(f.CashPriceUSD, f.TaxesFeesUSD, f.PointsRequired)
	f.CPP = &cpp
	return f
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func SortKey(f models.FlightRecord) float64 {
	if f.CPP == nil || *f.CPP <= 0 {
		return MissingCPPSortKey
	}
	return *f.CPP
}

// SortByValueAsc orders worst value first. The input is left untouched.
func SortByValueAsc(flights []models.FlightRecord) []models.FlightRecord {
	result := make([]models.FlightRecord, len(flights))
	copy(result, flights)
	sort.SliceStable(result, func(i, j int) bool {
		return SortKey(result[i]) < SortKey(result[j])
	})
	return result
}

// SortByValueDesc orders best value first. The input is left untouched.
func SortByValueDesc(flights []models.FlightRecord) []models.FlightRecord {
	result := make([]models.FlightRecord, len(flights))
	copy(result, flights)
	sort.SliceStable(result, func(i, j int) bool {
		return SortKey(result[i]) > SortKey(result[j])
	})
	return result
}

type Rating string

const (
	RatingExcellent Rating = "EXCELLENT"
	RatingGood      Rating = "GOOD"
	RatingFair      Rating = "FAIR"
)

func Rate(cpp float64) Rating {
	switch {
	case cpp >= 2.0:
		return RatingExcellent
	case cpp >= 1.5:
		return RatingGood
	default:
		return RatingFair
	}
}

// PointValueBaselineCents is the reference value of one point when judging
// whether a redemption beats paying cash.
const PointValueBaselineCents = 1.0

// Savings compares the net cash cost with the points valued at the baseline.
func Savings(cashPriceUSD, taxesFeesUSD float64, pointsRequired int) (netCash, pointsCost, savings float64) {
	netCash = cashPriceUSD - taxesFeesUSD
	pointsCost = float64(pointsRequired) * PointValueBaselineCents / 100
	return netCash, pointsCost, netCash - pointsCost
}
