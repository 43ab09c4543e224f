package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

const resultsPage = `<!doctype html>
<html><body>
<ul>
  <li class="flight-row">
    <span class="flight-number">AA 28</span>
    <div class="origin"><span class="time">12:15 AM</span></div>
    <div class="destination"><span class="time">8:29 AM</span></div>
    <span class="duration">8h 14m</span>
    <span class="stops">Nonstop</span>
    <span class="award-price">17K + $5.60</span>
  </li>
  <li class="flight-row">
    <p>AA 118   6:05 AM   2:10 PM   8h 5m   1 stop   Main   $131</p>
  </li>
  <li class="flight-row">   </li>
</ul>
</body></html>`

func TestParseResultsPage(t *testing.T) {
	observations, err := ParseResultsPage(strings.NewReader(resultsPage), DefaultPageSelectors())
	require.NoError(t, err)
	require.Len(t, observations, 2)

	first := observations[0]
	assert.Equal(t, "AA 28", first.Flight)
	assert.Equal(t, "12:15 AM", first.Departure)
	assert.Equal(t, "8:29 AM", first.Arrival)
	assert.Equal(t, "17K + $5.60", first.Points)
	assert.Empty(t, first.Cash)
	assert.Equal(t, "Nonstop", first.Stops)

	second := observations[1]
	assert.Empty(t, second.Flight)
	assert.Equal(t, "AA 118 6:05 AM 2:10 PM 8h 5m 1 stop Main $131", second.Text)

	records := models.ToRecords(observations)
	assert.Equal(t, "AA28", records[0].FlightNumber)
	assert.Equal(t, "00:15", records[0].DepartureTime)
	assert.Equal(t, 17000, records[0].PointsRequired)

	assert.Equal(t, "AA118", records[1].FlightNumber)
	assert.Equal(t, "06:05", records[1].DepartureTime)
	assert.Equal(t, "14:10", records[1].ArrivalTime)
	assert.Equal(t, 131.0, records[1].CashPriceUSD)
}

func TestParseResultsPageNoRows(t *testing.T) {
	observations, err := ParseResultsPage(strings.NewReader("<html><body><p>No flights</p></body></html>"), PageSelectors{})
	require.NoError(t, err)
	assert.Empty(t, observations)
}
