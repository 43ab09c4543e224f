package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/ranking"
	"github.com/dharmasatrya/flightvalue/pkg/currency"
)

const summaryTopN = 5

func PrintSummary(w io.Writer, report models.Report) {
	meta := report.SearchMetadata
	fmt.Fprintf(w, "%s -> %s on %s, %d passenger(s), %s\n",
		meta.Origin, meta.Destination, meta.Date, meta.Passengers, meta.CabinClass)
	fmt.Fprintf(w, "Total flights: %d (source: %s)\n", report.TotalResults, report.Source)

	best, ok := report.Best()
	if !ok {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Top flights by CPP")
	t.AppendHeader(table.Row{"#", "Flight", "Depart", "Arrive", "Points", "Cash", "Fees", "CPP", "Rating"})
	for i, f := range report.Flights[:min(summaryTopN, len(report.Flights))] {
		t.AppendRow(table.Row{
			i + 1,
			f.FlightNumber,
			f.DepartureTime,
			f.ArrivalTime,
			currency.FormatPoints(f.PointsRequired),
			currency.FormatUSD(f.CashPriceUSD),
			currency.FormatUSD(f.TaxesFeesUSD),
			currency.FormatCents(f.CPP),
			ranking.Rate(f.CPP),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	netCash, pointsCost, savings := ranking.Savings(best.CashPriceUSD, best.TaxesFeesUSD, best.PointsRequired)
	fmt.Fprintf(w, "\nBest value: %s at %s\n", best.FlightNumber, currency.FormatCents(best.CPP))
	fmt.Fprintf(w, "  Net cash cost:     %s\n", currency.FormatUSD(netCash))
	fmt.Fprintf(w, "  Points cost at 1¢: %s\n", currency.FormatUSD(pointsCost))
	fmt.Fprintf(w, "  Savings on points: %s\n", currency.FormatUSD(savings))
	fmt.Fprintf(w, "  %s\n", Recommendation(best.CPP))
}

func Recommendation(cpp float64) string {
	switch ranking.Rate(cpp) {
	case ranking.RatingExcellent:
		return "Book with miles: excellent value."
	case ranking.RatingGood:
		return "Consider booking with miles: good value."
	default:
		return "Consider paying cash: fair value."
	}
}

func PrintHistory(w io.Writer, entries []models.HistoryEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Route", "Date", "Source", "Flights", "Best CPP", "Created"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.ID,
			e.Search.Origin + "-" + e.Search.Destination,
			e.Search.Date,
			e.Source,
			e.TotalResults,
			currency.FormatCents(e.BestCPP),
			formatUnix(e.CreatedAt),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func formatUnix(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04:05")
}
