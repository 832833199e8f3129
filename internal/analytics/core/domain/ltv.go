package domain

// LTVUser is one row of the ungrouped lifetime-value listing.
type LTVUser struct {
	UserID            string
	FirstPurchaseDate string
	PurchaseCount     int64
	Value             float64
}

// LTVGroup aggregates lifetime value over a dimension key
// (country code, device category or first purchase date).
type LTVGroup struct {
	Key       string
	UserCount int64
	Value     float64
	Average   float64
}

type LTVReport struct {
	GroupBy Dimension
	Window  Window
	Users   []LTVUser  // GroupBy == DimensionNone
	Groups  []LTVGroup // any other dimension
}

// Len is the number of items in whichever listing is populated.
func (r *LTVReport) Len() int {
	if r.GroupBy == DimensionNone {
		return len(r.Users)
	}
	return len(r.Groups)
}

type LTVOverview struct {
	UserCount        int64
	PayingUsers      int64
	TotalLTV         float64
	AvgPurchaseCount float64
	Averages         map[Window]float64
}
