package domain

type Overview struct {
	UserCount    int64
	EventCount   int64
	DeviceCount  int64
	TotalRevenue float64
}

type TimelinePoint struct {
	Date        string
	UserCount   int64
	EventCount  int64
	Revenue     float64
	DeviceCount int64
}

// SegmentTotal is a per-country or per-device rollup.
type SegmentTotal struct {
	Key     string
	Users   int64
	Revenue float64
}

type SegmentUsers struct {
	Key   string
	Users int64
}

type DayDetails struct {
	Date         string
	TotalRevenue float64
	Countries    []SegmentUsers
	Devices      []SegmentUsers
}
