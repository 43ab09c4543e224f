package fallback

// Template is one historically observed flight on the default route.
type Template struct {
	Flight   string
	Dep      string
	Arr      string
	Points   int
	Cash     float64
	Duration string
	Stops    int
	Taxes    float64 // 0 means the standard award minimum
}

// DefaultTemplates were recorded from LAX-JFK economy results.
var DefaultTemplates = []Template{
	// nonstop
	{Flight: "AA28", Dep: "00:15", Arr: "08:29", Points: 17000, Cash: 170, Duration: "8h 14m", Stops: 0},
	{Flight: "AA118", Dep: "06:05", Arr: "14:10", Points: 15000, Cash: 131, Duration: "8h 5m", Stops: 0},
	{Flight: "AA2", Dep: "07:00", Arr: "15:32", Points: 17000, Cash: 167, Duration: "8h 32m", Stops: 0},
	{Flight: "AA307", Dep: "08:00", Arr: "16:28", Points: 23000, Cash: 238, Duration: "8h 28m", Stops: 0},
	{Flight: "AA238", Dep: "10:15", Arr: "18:42", Points: 31000, Cash: 341, Duration: "8h 27m", Stops: 0},
	{Flight: "AA32", Dep: "11:20", Arr: "19:45", Points: 24500, Cash: 235, Duration: "8h 25m", Stops: 0},
	{Flight: "AA274", Dep: "12:37", Arr: "21:00", Points: 27000, Cash: 326, Duration: "8h 23m", Stops: 0},
	{Flight: "AA4", Dep: "15:40", Arr: "23:49", Points: 15000, Cash: 117, Duration: "8h 9m", Stops: 0},
	{Flight: "AA10", Dep: "21:45", Arr: "06:00", Points: 20000, Cash: 212, Duration: "8h 15m", Stops: 0},

	// one stop
	{Flight: "AA1956", Dep: "00:45", Arr: "11:37", Points: 15000, Cash: 164, Duration: "10h 52m", Stops: 1},
	{Flight: "AA2129", Dep: "06:00", Arr: "19:29", Points: 15000, Cash: 176, Duration: "13h 29m", Stops: 1},
	{Flight: "AA2808", Dep: "06:06", Arr: "19:00", Points: 15000, Cash: 193, Duration: "12h 54m", Stops: 1},
	{Flight: "AA2030", Dep: "07:00", Arr: "19:29", Points: 15000, Cash: 190, Duration: "12h 29m", Stops: 1},
	{Flight: "AA12", Dep: "09:00", Arr: "20:57", Points: 22500, Cash: 269, Duration: "11h 57m", Stops: 1},
	{Flight: "AA814", Dep: "09:03", Arr: "21:14", Points: 15000, Cash: 171, Duration: "12h 11m", Stops: 1},
	{Flight: "AA2630", Dep: "09:40", Arr: "19:45", Points: 15000, Cash: 191, Duration: "10h 5m", Stops: 1},
	{Flight: "AA2023", Dep: "11:05", Arr: "22:00", Points: 15000, Cash: 178, Duration: "10h 55m", Stops: 1},
	{Flight: "AA2079", Dep: "19:30", Arr: "06:30", Points: 15000, Cash: 190, Duration: "11h 0m", Stops: 1},
	{Flight: "AA2930", Dep: "20:00", Arr: "06:30", Points: 15000, Cash: 184, Duration: "10h 30m", Stops: 1},
	{Flight: "AA3176", Dep: "18:50", Arr: "07:00", Points: 15000, Cash: 183, Duration: "12h 10m", Stops: 1},

	// Alaska codeshare
	{Flight: "AS2046", Dep: "08:02", Arr: "19:45", Points: 12500, Cash: 190, Duration: "11h 43m", Stops: 1},
	{Flight: "AS3431", Dep: "15:59", Arr: "07:00", Points: 12500, Cash: 192, Duration: "15h 1m", Stops: 1},
	{Flight: "AS2477", Dep: "17:26", Arr: "07:00", Points: 12500, Cash: 188, Duration: "13h 34m", Stops: 1},
	{Flight: "AS2500", Dep: "18:49", Arr: "07:00", Points: 12500, Cash: 168, Duration: "12h 11m", Stops: 1},
	{Flight: "AS84", Dep: "19:00", Arr: "07:23", Points: 12500, Cash: 189, Duration: "12h 23m", Stops: 1},
	{Flight: "AS2482", Dep: "20:18", Arr: "07:00", Points: 12500, Cash: 188, Duration: "10h 42m", Stops: 1},
	{Flight: "AS3463", Dep: "22:27", Arr: "15:00", Points: 12500, Cash: 180, Duration: "16h 33m", Stops: 1},

	// red-eye, next-day arrival
	{Flight: "AA6324", Dep: "13:29", Arr: "07:00", Points: 21500, Cash: 232, Duration: "17h 31m", Stops: 1, Taxes: 11.2},
	{Flight: "AA182", Dep: "13:50", Arr: "07:29", Points: 19500, Cash: 217, Duration: "17h 39m", Stops: 1, Taxes: 11.2},
	{Flight: "AA6371", Dep: "17:03", Arr: "07:00", Points: 16500, Cash: 198, Duration: "13h 57m", Stops: 1, Taxes: 11.2},
	{Flight: "AA6260", Dep: "20:00", Arr: "07:00", Points: 16500, Cash: 168, Duration: "11h 0m", Stops: 1},
	{Flight: "AA820", Dep: "22:37", Arr: "14:57", Points: 15000, Cash: 194, Duration: "16h 20m", Stops: 1, Taxes: 11.2},
	{Flight: "AA2453", Dep: "22:49", Arr: "13:29", Points: 15000, Cash: 180, Duration: "14h 40m", Stops: 1, Taxes: 11.2},
}

// PaddingTemplates supply schedule shape for synthesized records; their
// flight number and prices are redrawn.
var PaddingTemplates = []Template{
	{Flight: "AA820", Dep: "22:37", Arr: "10:00", Points: 15000, Cash: 184, Duration: "11h 23m", Stops: 1},
	{Flight: "AS2482", Dep: "20:18", Arr: "07:30", Points: 27000, Cash: 170, Duration: "11h 12m", Stops: 1},
	{Flight: "AS3463", Dep: "22:27", Arr: "15:54", Points: 12500, Cash: 185, Duration: "17h 27m", Stops: 1, Taxes: 11.2},
}

var (
	PaddingPoints = []int{12500, 15000, 16500, 19500, 21500, 24500, 27000}

	PaddingCashMin = 124
	PaddingCashMax = 339
)
