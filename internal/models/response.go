package models

type SearchMetadata struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Passengers  int    `json:"passengers"`
	CabinClass  string `json:"cabin_class"`
}

func NewSearchMetadata(p SearchParams) SearchMetadata {
	return SearchMetadata{
		Origin:      p.Origin,
		Destination: p.Destination,
		Date:        p.Date,
		Passengers:  p.Passengers,
		CabinClass:  p.CabinClass,
	}
}

// ReportFlight is one presentation row. Money and CPP are already rounded.
type ReportFlight struct {
	FlightNumber   string  `json:"flight_number"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time"`
	PointsRequired int     `json:"points_required"`
	CashPriceUSD   float64 `json:"cash_price_usd"`
	TaxesFeesUSD   float64 `json:"taxes_fees_usd"`
	CPP            float64 `json:"cpp"`
}

// Report is the terminal document of the pipeline. Source is kept out of the
// serialized form so the written document keeps its fixed shape.
type Report struct {
	SearchMetadata SearchMetadata `json:"search_metadata"`
	Flights        []ReportFlight `json:"flights"`
	TotalResults   int            `json:"total_results"`
	Source         Source         `json:"-"`
}

func (r Report) Best() (ReportFlight, bool) {
	if len(r.Flights) == 0 {
		return ReportFlight{}, false
	}
	return r.Flights[0], true
}

// CachedReport is the cache envelope; it keeps the provenance that the plain
// document drops.
type CachedReport struct {
	Report Report `json:"report"`
	Source Source `json:"source"`
}

type HistoryEntry struct {
	ID           int64          `json:"id"`
	Search       SearchMetadata `json:"search_metadata"`
	Source       Source         `json:"source"`
	TotalResults int            `json:"total_results"`
	BestCPP      float64        `json:"best_cpp"`
	CreatedAt    int64          `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
