package ports

import (
	"context"

	"attribution-analytics-service/internal/analytics/core/domain"
)

// QuerySpec describes one read. Built per request by the usecase and
// discarded once the query has run.
type QuerySpec struct {
	Entity    domain.Entity
	Date      *domain.DateFilter // nil -> no date filter
	Dimension domain.Dimension
	Window    domain.Window
	Limit     int // 0 -> no LIMIT clause
}

type AnalyticsReaderPort interface {
	Overview(ctx context.Context) (*domain.Overview, error)
	Timeline(ctx context.Context, q QuerySpec) ([]domain.TimelinePoint, error)
	SegmentTotals(ctx context.Context, q QuerySpec) ([]domain.SegmentTotal, error)
	DayDetails(ctx context.Context, date string) (*domain.DayDetails, error)
	LTV(ctx context.Context, q QuerySpec) (*domain.LTVReport, error)
	LTVOverview(ctx context.Context) (*domain.LTVOverview, error)
}
