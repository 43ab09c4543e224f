package providers

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

// DefaultRowSelector matches flight rows on saved results pages.
const DefaultRowSelector = `[data-testid="flight-row"], .flight-row, li.slice, app-slice-details`

// PageSelectors locate the fields inside one row. Empty selectors, or ones
// that match nothing, leave the field to be parsed from the row text.
type PageSelectors struct {
	Row       string
	Flight    string
	Departure string
	Arrival   string
	Points    string
	Cash      string
	Duration  string
	Stops     string
}

func DefaultPageSelectors() PageSelectors {
	return PageSelectors{
		Row:       DefaultRowSelector,
		Flight:    `.flight-number, [data-testid="flight-number"]`,
		Departure: `.origin .time, [data-testid="departure-time"]`,
		Arrival:   `.destination .time, [data-testid="arrival-time"]`,
		Points:    `.award-price, [data-testid="award-price"]`,
		Cash:      `.cash-price, [data-testid="cash-price"]`,
		Duration:  `.duration, [data-testid="duration"]`,
		Stops:     `.stops, [data-testid="stops"]`,
	}
}

func ParseResultsPage(r io.Reader, sel PageSelectors) ([]models.RawObservation, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	if sel.Row == "" {
		sel.Row = DefaultRowSelector
	}

	var observations []models.RawObservation
	doc.Find(sel.Row).Each(func(_ int, row *goquery.Selection) {
		text := collapseSpace(row.Text())
		if text == "" {
			return
		}
		observations = append(observations, models.RawObservation{
			Flight:    field(row, sel.Flight),
			Departure: field(row, sel.Departure),
			Arrival:   field(row, sel.Arrival),
			Points:    field(row, sel.Points),
			Cash:      field(row, sel.Cash),
			Duration:  field(row, sel.Duration),
			Stops:     field(row, sel.Stops),
			Text:      text,
		})
	})
	return observations, nil
}

func field(row *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return collapseSpace(row.Find(selector).First().Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
