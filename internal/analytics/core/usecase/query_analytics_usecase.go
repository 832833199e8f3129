package usecase

import (
	"context"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/analytics/core/ports"
)

// DefaultTimelineDays caps the legacy "most recent N days" timeline.
const DefaultTimelineDays = 30

// Segment selects the rollup table behind /api/country and /api/device.
type Segment string

const (
	SegmentCountry Segment = "country"
	SegmentDevice  Segment = "device"
)

var segmentEntities = map[Segment]domain.Entity{
	SegmentCountry: domain.EntityCountryStats,
	SegmentDevice:  domain.EntityDeviceStats,
}

// TimelineInput carries the raw timeline parameters. A non-nil DateRange
// wins over Days and disables the row cap.
type TimelineInput struct {
	DateRange *string
	Days      *int
}

type SegmentInput struct {
	Segment Segment
	Date    *string
}

type DetailsInput struct {
	Date *string
}

type LTVInput struct {
	GroupBy string
	Window  string
}

type QueryAnalyticsUseCase struct {
	reader ports.AnalyticsReaderPort
}

func NewQueryAnalyticsUseCase(reader ports.AnalyticsReaderPort) *QueryAnalyticsUseCase {
	return &QueryAnalyticsUseCase{reader: reader}
}

func (uc *QueryAnalyticsUseCase) Overview(ctx context.Context) (*domain.Overview, error) {
	return uc.reader.Overview(ctx)
}

func (uc *QueryAnalyticsUseCase) Timeline(ctx context.Context, in TimelineInput) ([]domain.TimelinePoint, error) {
	q := ports.QuerySpec{Entity: domain.EntityDailyStats}

	if in.DateRange != nil {
		f := domain.ParseDateFilter(*in.DateRange)
		q.Date = &f
		return uc.reader.Timeline(ctx, q)
	}

	days := DefaultTimelineDays
	if in.Days != nil {
		days = *in.Days
	}
	if days <= 0 {
		return nil, domain.NewValidationError("days", "", "must be a positive integer")
	}
	q.Limit = days

	return uc.reader.Timeline(ctx, q)
}

func (uc *QueryAnalyticsUseCase) Segments(ctx context.Context, in SegmentInput) ([]domain.SegmentTotal, error) {
	entity, ok := segmentEntities[in.Segment]
	if !ok {
		return nil, domain.NewValidationError("segment", string(in.Segment), "unknown segment")
	}

	q := ports.QuerySpec{Entity: entity}
	if in.Date != nil {
		f := domain.ParseDateFilter(*in.Date)
		q.Date = &f
	}

	return uc.reader.SegmentTotals(ctx, q)
}

func (uc *QueryAnalyticsUseCase) Details(ctx context.Context, in DetailsInput) (*domain.DayDetails, error) {
	if in.Date == nil {
		return nil, domain.NewValidationError("date", "", "missing required parameter")
	}
	return uc.reader.DayDetails(ctx, *in.Date)
}

func (uc *QueryAnalyticsUseCase) LTV(ctx context.Context, in LTVInput) (*domain.LTVReport, error) {
	dim, err := domain.ParseDimension(in.GroupBy)
	if err != nil {
		return nil, err
	}
	win, err := domain.ParseWindow(in.Window)
	if err != nil {
		return nil, err
	}

	return uc.reader.LTV(ctx, ports.QuerySpec{
		Entity:    domain.EntityUserLTV,
		Dimension: dim,
		Window:    win,
	})
}

func (uc *QueryAnalyticsUseCase) LTVOverview(ctx context.Context) (*domain.LTVOverview, error) {
	return uc.reader.LTVOverview(ctx)
}
