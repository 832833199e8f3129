package fiber

import (
	"attribution-analytics-service/internal/analytics/core/domain"
)

type OverviewResponse struct {
	UserCount    int64   `json:"user_count" example:"1200"`
	EventCount   int64   `json:"event_count" example:"45210"`
	DeviceCount  int64   `json:"device_count" example:"3"`
	TotalRevenue float64 `json:"total_revenue" example:"1834.25"`
}

type TimelineItem struct {
	Date        string  `json:"date" example:"2024-01-02"`
	UserCount   int64   `json:"user_count" example:"110"`
	EventCount  int64   `json:"event_count" example:"520"`
	Revenue     float64 `json:"revenue" example:"260"`
	DeviceCount int64   `json:"device_count" example:"3"`
}

type TimelineResponse struct {
	Items []TimelineItem `json:"items"`
	Total int            `json:"total"`
}

type CountryItem struct {
	Country string  `json:"country" example:"US"`
	Users   int64   `json:"users" example:"340"`
	Revenue float64 `json:"revenue" example:"912.4"`
}

type CountryListResponse struct {
	Items []CountryItem `json:"items"`
	Total int           `json:"total"`
}

type DeviceItem struct {
	Device  string  `json:"device" example:"mobile"`
	Users   int64   `json:"users" example:"800"`
	Revenue float64 `json:"revenue" example:"1530"`
}

type DeviceListResponse struct {
	Items []DeviceItem `json:"items"`
	Total int          `json:"total"`
}

type CountryUsers struct {
	Country string `json:"country" example:"US"`
	Users   int64  `json:"users" example:"12"`
}

type DeviceUsers struct {
	Device string `json:"device" example:"mobile"`
	Users  int64  `json:"users" example:"9"`
}

type DetailsResponse struct {
	Date         string         `json:"date" example:"2024-01-01"`
	TotalRevenue float64        `json:"total_revenue" example:"99.5"`
	Countries    []CountryUsers `json:"countries"`
	Devices      []DeviceUsers  `json:"devices"`
}

type LTVUserItem struct {
	UserID            string  `json:"user_id" example:"1700000000000-1234567"`
	FirstPurchaseDate string  `json:"first_purchase_date" example:"2024-01-01"`
	PurchaseCount     int64   `json:"purchase_count" example:"2"`
	LTVValue          float64 `json:"ltv_value" example:"19.98"`
}

// LTVGroupStats is shared by every grouped LTV item.
type LTVGroupStats struct {
	UserCount int64   `json:"user_count" example:"2"`
	LTVValue  float64 `json:"ltv_value" example:"30"`
	AvgLTV    float64 `json:"avg_ltv" example:"15"`
}

type LTVCountryItem struct {
	Country string `json:"country" example:"US"`
	LTVGroupStats
}

type LTVDeviceItem struct {
	Device string `json:"device" example:"mobile"`
	LTVGroupStats
}

type LTVDateItem struct {
	Date string `json:"date" example:"2024-01-01"`
	LTVGroupStats
}

// LTVResponse carries one of the LTV item types depending on group_by.
type LTVResponse struct {
	GroupBy string `json:"group_by" example:"country"`
	Window  string `json:"window" example:"30d"`
	Items   any    `json:"items"`
	Total   int    `json:"total" example:"2"`
}

type LTVOverviewResponse struct {
	UserCount        int64   `json:"user_count" example:"1200"`
	PayingUsers      int64   `json:"paying_users" example:"85"`
	TotalLTV         float64 `json:"total_ltv" example:"1834.25"`
	AvgPurchaseCount float64 `json:"avg_purchase_count" example:"0.2"`
	AvgLTV1D         float64 `json:"avg_ltv_1d"`
	AvgLTV7D         float64 `json:"avg_ltv_7d"`
	AvgLTV14D        float64 `json:"avg_ltv_14d"`
	AvgLTV30D        float64 `json:"avg_ltv_30d"`
	AvgLTV60D        float64 `json:"avg_ltv_60d"`
	AvgLTV90D        float64 `json:"avg_ltv_90d"`
	AvgLTVTotal      float64 `json:"avg_ltv_total"`
}

func newTimelineResponse(points []domain.TimelinePoint) TimelineResponse {
	resp := TimelineResponse{Items: make([]TimelineItem, 0, len(points))}
	for _, p := range points {
		resp.Items = append(resp.Items, TimelineItem{
			Date:        p.Date,
			UserCount:   p.UserCount,
			EventCount:  p.EventCount,
			Revenue:     p.Revenue,
			DeviceCount: p.DeviceCount,
		})
	}
	resp.Total = len(resp.Items)
	return resp
}

func newCountryListResponse(totals []domain.SegmentTotal) CountryListResponse {
	resp := CountryListResponse{Items: make([]CountryItem, 0, len(totals))}
	for _, s := range totals {
		resp.Items = append(resp.Items, CountryItem{Country: s.Key, Users: s.Users, Revenue: s.Revenue})
	}
	resp.Total = len(resp.Items)
	return resp
}

func newDeviceListResponse(totals []domain.SegmentTotal) DeviceListResponse {
	resp := DeviceListResponse{Items: make([]DeviceItem, 0, len(totals))}
	for _, s := range totals {
		resp.Items = append(resp.Items, DeviceItem{Device: s.Key, Users: s.Users, Revenue: s.Revenue})
	}
	resp.Total = len(resp.Items)
	return resp
}

func newDetailsResponse(d *domain.DayDetails) DetailsResponse {
	resp := DetailsResponse{
		Date:         d.Date,
		TotalRevenue: d.TotalRevenue,
		Countries:    make([]CountryUsers, 0, len(d.Countries)),
		Devices:      make([]DeviceUsers, 0, len(d.Devices)),
	}
	for _, c := range d.Countries {
		resp.Countries = append(resp.Countries, CountryUsers{Country: c.Key, Users: c.Users})
	}
	for _, dev := range d.Devices {
		resp.Devices = append(resp.Devices, DeviceUsers{Device: dev.Key, Users: dev.Users})
	}
	return resp
}

func newLTVResponse(r *domain.LTVReport) LTVResponse {
	resp := LTVResponse{
		GroupBy: string(r.GroupBy),
		Window:  string(r.Window),
		Total:   r.Len(),
	}

	switch r.GroupBy {
	case domain.DimensionCountry:
		items := make([]LTVCountryItem, 0, len(r.Groups))
		for _, g := range r.Groups {
			items = append(items, LTVCountryItem{Country: g.Key, LTVGroupStats: groupStats(g)})
		}
		resp.Items = items
	case domain.DimensionDevice:
		items := make([]LTVDeviceItem, 0, len(r.Groups))
		for _, g := range r.Groups {
			items = append(items, LTVDeviceItem{Device: g.Key, LTVGroupStats: groupStats(g)})
		}
		resp.Items = items
	case domain.DimensionDate:
		items := make([]LTVDateItem, 0, len(r.Groups))
		for _, g := range r.Groups {
			items = append(items, LTVDateItem{Date: g.Key, LTVGroupStats: groupStats(g)})
		}
		resp.Items = items
	default:
		items := make([]LTVUserItem, 0, len(r.Users))
		for _, u := range r.Users {
			items = append(items, LTVUserItem{
				UserID:            u.UserID,
				FirstPurchaseDate: u.FirstPurchaseDate,
				PurchaseCount:     u.PurchaseCount,
				LTVValue:          u.Value,
			})
		}
		resp.Items = items
	}

	return resp
}

func groupStats(g domain.LTVGroup) LTVGroupStats {
	return LTVGroupStats{UserCount: g.UserCount, LTVValue: g.Value, AvgLTV: g.Average}
}

func newLTVOverviewResponse(o *domain.LTVOverview) LTVOverviewResponse {
	return LTVOverviewResponse{
		UserCount:        o.UserCount,
		PayingUsers:      o.PayingUsers,
		TotalLTV:         o.TotalLTV,
		AvgPurchaseCount: o.AvgPurchaseCount,
		AvgLTV1D:         o.Averages[domain.Window1D],
		AvgLTV7D:         o.Averages[domain.Window7D],
		AvgLTV14D:        o.Averages[domain.Window14D],
		AvgLTV30D:        o.Averages[domain.Window30D],
		AvgLTV60D:        o.Averages[domain.Window60D],
		AvgLTV90D:        o.Averages[domain.Window90D],
		AvgLTVTotal:      o.Averages[domain.WindowTotal],
	}
}
