package fallback

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/random"
	"github.com/dharmasatrya/flightvalue/internal/ranking"
)

func TestGetAccurateFlights(t *testing.T) {
	flights := NewDefaultCatalog(random.New(1)).GetAccurateFlights()

	require.Len(t, flights, DefaultSize)
	for i, f := range flights {
		assert.Equal(t, models.SourceFallback, f.Source, f.FlightNumber)
		assert.True(t, f.IsComplete(), f.FlightNumber)
		require.NotNil(t, f.CPP, f.FlightNumber)
		assert.Greater(t, *f.CPP, 0.0, f.FlightNumber)
		if i > 0 {
			assert.GreaterOrEqual(t, ranking.SortKey(flights[i-1]), ranking.SortKey(f), "best value first")
		}
	}
}

func TestGetAccurateFlightsKeepsTable(t *testing.T) {
	flights := NewDefaultCatalog(random.New(1)).GetAccurateFlights()

	byNumber := make(map[string]models.FlightRecord, len(flights))
	for _, f := range flights {
		byNumber[f.FlightNumber] = f
	}

	aa28, ok := byNumber["AA28"]
	require.True(t, ok)
	assert.Equal(t, "00:15", aa28.DepartureTime)
	assert.Equal(t, 17000, aa28.PointsRequired)
	assert.Equal(t, 170.0, aa28.CashPriceUSD)
	assert.Equal(t, models.DefaultTaxesFeesUSD, aa28.TaxesFeesUSD)
	assert.InDelta(t, 0.9671, *aa28.CPP, 1e-4)

	aa182, ok := byNumber["AA182"]
	require.True(t, ok)
	assert.Equal(t, 11.2, aa182.TaxesFeesUSD)
}

func TestGetAccurateFlightsDeterministicWithSeed(t *testing.T) {
	a := NewDefaultCatalog(random.New(99)).GetAccurateFlights()
	b := NewDefaultCatalog(random.New(99)).GetAccurateFlights()

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("catalogs differ (-a +b):\n%s", diff)
	}
}

func TestGetAccurateFlightsPaddingOnly(t *testing.T) {
	catalog := NewCatalog(random.New(7), Config{Templates: []Template{}})
	flights := catalog.GetAccurateFlights()

	require.Len(t, flights, DefaultSize)
	numberPattern := regexp.MustCompile(`^AA\d{4}$`)
	for _, f := range flights {
		assert.Regexp(t, numberPattern, f.FlightNumber)
		assert.Contains(t, PaddingPoints, f.PointsRequired)
		assert.GreaterOrEqual(t, f.CashPriceUSD, float64(PaddingCashMin))
		assert.LessOrEqual(t, f.CashPriceUSD, float64(PaddingCashMax))
		assert.True(t, f.IsFallback())
	}
}

func TestGetAccurateFlightsTruncates(t *testing.T) {
	flights := NewCatalog(random.New(3), Config{Size: 10}).GetAccurateFlights()
	require.Len(t, flights, 10)

	full := NewCatalog(random.New(3), Config{Size: len(DefaultTemplates)}).GetAccurateFlights()
	assert.Equal(t, full[:10], flights, "the best ten survive")
}

func TestGetAccurateFlightsNonPositiveCPPSortsFirst(t *testing.T) {
	templates := []Template{
		{Flight: "AA100", Dep: "08:00", Arr: "16:30", Points: 15000, Cash: 180, Duration: "5h 30m"},
		{Flight: "AA200", Dep: "09:00", Arr: "17:30", Points: 15000, Cash: 3, Duration: "5h 30m"},
		{Flight: "AA300", Dep: "10:00", Arr: "18:30", Points: 0, Cash: 250, Duration: "5h 30m"},
		{Flight: "AA400", Dep: "11:00", Arr: "19:30", Points: 10000, Cash: 205.60, Duration: "5h 30m"},
	}

	flights := NewCatalog(random.New(1), Config{Size: len(templates), Templates: templates}).GetAccurateFlights()

	got := make([]string, 0, len(flights))
	for _, f := range flights {
		got = append(got, f.FlightNumber)
	}
	// Records without a positive CPP take the 999 sort key, which leads the
	// descending order.
	assert.Equal(t, []string{"AA200", "AA300", "AA400", "AA100"}, got)
	require.NotNil(t, flights[0].CPP)
	assert.Less(t, *flights[0].CPP, 0.0)
}

func TestGetAccurateFlightsVariance(t *testing.T) {
	config := DefaultConfig()
	config.Size = len(DefaultTemplates)
	config.Variance = true

	flights := NewCatalog(random.New(11), config).GetAccurateFlights()
	require.Len(t, flights, len(DefaultTemplates))

	templates := make(map[string]Template, len(DefaultTemplates))
	for _, tmpl := range DefaultTemplates {
		templates[tmpl.Flight] = tmpl
	}
	for _, f := range flights {
		tmpl, ok := templates[f.FlightNumber]
		require.True(t, ok, f.FlightNumber)
		assert.InDelta(t, tmpl.Cash, f.CashPriceUSD, float64(config.CashVariance), f.FlightNumber)
		assert.GreaterOrEqual(t, f.CashPriceUSD, config.MinVariedCash)
	}
}
