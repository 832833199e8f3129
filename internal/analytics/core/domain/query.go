package domain

import "strings"

// Entity is a base table the query layer is allowed to read.
type Entity string

const (
	EntityUsers        Entity = "users"
	EntityEvents       Entity = "events"
	EntityDailyStats   Entity = "daily_stats"
	EntityCountryStats Entity = "country_stats"
	EntityDeviceStats  Entity = "device_stats"
	EntityUserLTV      Entity = "user_ltv"
)

// DateSeparator splits a range token into start and end.
const DateSeparator = "|"

// DateFilter is either a single date or an inclusive range.
// Dates are opaque strings, compared lexically by the store.
type DateFilter struct {
	Start   string
	End     string
	IsRange bool
}

func SingleDate(d string) DateFilter {
	return DateFilter{Start: d, End: d}
}

func DateRange(start, end string) DateFilter {
	return DateFilter{Start: start, End: end, IsRange: true}
}

// ParseDateFilter turns a raw token into a filter. A token containing the
// separator is split at its first occurrence into a range; anything else is a
// single date. Empty halves are kept as empty strings. It never fails.
func ParseDateFilter(token string) DateFilter {
	start, end, found := strings.Cut(token, DateSeparator)
	if found {
		return DateRange(start, end)
	}
	return SingleDate(token)
}

func (f DateFilter) String() string {
	if f.IsRange {
		return f.Start + DateSeparator + f.End
	}
	return f.Start
}

// Dimension is the grouping axis for LTV queries.
type Dimension string

const (
	DimensionNone    Dimension = ""
	DimensionCountry Dimension = "country"
	DimensionDevice  Dimension = "device"
	DimensionDate    Dimension = "date"
)

var dimensions = map[string]Dimension{
	"":        DimensionNone,
	"country": DimensionCountry,
	"device":  DimensionDevice,
	"date":    DimensionDate,
}

// ParseDimension accepts only the fixed set of grouping axes.
func ParseDimension(s string) (Dimension, error) {
	d, ok := dimensions[s]
	if !ok {
		return DimensionNone, NewValidationError("groupBy", s, "must be one of country, device, date or empty")
	}
	return d, nil
}

// Window is the LTV horizon.
type Window string

const (
	Window1D    Window = "1d"
	Window7D    Window = "7d"
	Window14D   Window = "14d"
	Window30D   Window = "30d"
	Window60D   Window = "60d"
	Window90D   Window = "90d"
	WindowTotal Window = "total"
)

// Windows lists every LTV horizon in ascending order.
var Windows = []Window{Window1D, Window7D, Window14D, Window30D, Window60D, Window90D, WindowTotal}

// DefaultWindow is used when the request does not name one.
const DefaultWindow = WindowTotal

// ParseWindow accepts only the fixed horizons. An empty string selects
// DefaultWindow.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return DefaultWindow, nil
	}
	for _, w := range Windows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", NewValidationError("window", s, "must be one of 1d, 7d, 14d, 30d, 60d, 90d, total")
}
