package sqlstore

import (
	"context"
	"fmt"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/analytics/core/ports"
)

// PurchaseEvent is the event name whose revenue counts toward totals.
const PurchaseEvent = "af_purchase"

// Querier is the slice of Executor the repository needs.
type Querier interface {
	Query(ctx context.Context, q Query) ([]RawRow, error)
}

type AnalyticsRepository struct {
	db Querier
}

func NewAnalyticsRepository(db Querier) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

var _ ports.AnalyticsReaderPort = (*AnalyticsRepository)(nil)

const overviewSQL = `
SELECT
    (SELECT COUNT(DISTINCT appsflyer_id) FROM users) AS user_count,
    (SELECT COUNT(*) FROM events) AS event_count,
    (SELECT COUNT(DISTINCT device_category) FROM events) AS device_count,
    (SELECT SUM(event_revenue_usd) FROM events WHERE event_name = ?) AS total_revenue`

func (r *AnalyticsRepository) Overview(ctx context.Context) (*domain.Overview, error) {
	rows, err := r.db.Query(ctx, Query{
		Name: "overview",
		SQL:  overviewSQL,
		Args: []any{PurchaseEvent},
	})
	if err != nil {
		return nil, err
	}

	rec, err := MarshalSingle(rows, overviewSchema)
	if err != nil {
		return nil, err
	}

	return &domain.Overview{
		UserCount:    rec.Int("user_count"),
		EventCount:   rec.Int("event_count"),
		DeviceCount:  rec.Int("device_count"),
		TotalRevenue: rec.Float("total_revenue"),
	}, nil
}

func (r *AnalyticsRepository) Timeline(ctx context.Context, q ports.QuerySpec) ([]domain.TimelinePoint, error) {
	if err := expectEntity(q, domain.EntityDailyStats); err != nil {
		return nil, err
	}
	table, err := tableFor(q.Entity)
	if err != nil {
		return nil, err
	}

	b := selectFrom(table).
		Columns(asText("stat_date")+" AS stat_date", "user_count", "event_count", "revenue_usd", "device_count").
		WhereDate("stat_date", q.Date).
		OrderBy("stat_date DESC")

	// a date filter returns the whole bounded set
	if q.Date == nil && q.Limit > 0 {
		b.Limit(q.Limit)
	}

	query, err := b.Build("timeline")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	recs := MarshalRows(rows, timelineSchema)
	out := make([]domain.TimelinePoint, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.TimelinePoint{
			Date:        rec.Text("stat_date"),
			UserCount:   rec.Int("user_count"),
			EventCount:  rec.Int("event_count"),
			Revenue:     rec.Float("revenue_usd"),
			DeviceCount: rec.Int("device_count"),
		})
	}

	return out, nil
}

func (r *AnalyticsRepository) SegmentTotals(ctx context.Context, q ports.QuerySpec) ([]domain.SegmentTotal, error) {
	key, ok := segmentKeys[q.Entity]
	if !ok {
		return nil, fmt.Errorf("segment totals: unsupported entity %q", q.Entity)
	}
	table, err := tableFor(q.Entity)
	if err != nil {
		return nil, err
	}

	query, err := selectFrom(table).
		Columns(key, "SUM(user_count) AS total_users", "SUM(revenue_usd) AS revenue").
		WhereDate("stat_date", q.Date).
		GroupBy(key).
		OrderBy("revenue DESC", key+" ASC").
		Build("segment_totals_" + key)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	recs := MarshalRows(rows, segmentTotalsSchema(key))
	out := make([]domain.SegmentTotal, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.SegmentTotal{
			Key:     rec.Text(key),
			Users:   rec.Int("total_users"),
			Revenue: rec.Float("revenue"),
		})
	}

	return out, nil
}

func (r *AnalyticsRepository) DayDetails(ctx context.Context, date string) (*domain.DayDetails, error) {
	countries, err := r.usersBy(ctx, "country_code", date)
	if err != nil {
		return nil, err
	}

	devices, err := r.usersBy(ctx, "device_category", date)
	if err != nil {
		return nil, err
	}

	query, err := selectFrom(entityTables[domain.EntityEvents]).
		Columns("COALESCE(SUM(event_revenue_usd), 0) AS total_revenue").
		Where("created_date = ?", date).
		Where("event_name = ?", PurchaseEvent).
		Build("details_revenue")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	revenue := 0.0
	if rec, err := MarshalSingle(rows, detailsRevenueSchema); err == nil {
		revenue = rec.Float("total_revenue")
	}

	return &domain.DayDetails{
		Date:         date,
		TotalRevenue: revenue,
		Countries:    countries,
		Devices:      devices,
	}, nil
}

// usersBy counts distinct users per key column for one event date.
func (r *AnalyticsRepository) usersBy(ctx context.Context, key, date string) ([]domain.SegmentUsers, error) {
	query, err := selectFrom(entityTables[domain.EntityEvents]).
		Columns(key, "COUNT(DISTINCT appsflyer_id) AS user_count").
		Where("created_date = ?", date).
		GroupBy(key).
		OrderBy("user_count DESC", key+" ASC").
		Build("details_" + key)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	recs := MarshalRows(rows, segmentUsersSchema(key))
	out := make([]domain.SegmentUsers, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.SegmentUsers{
			Key:   rec.Text(key),
			Users: rec.Int("user_count"),
		})
	}

	return out, nil
}

func (r *AnalyticsRepository) LTV(ctx context.Context, q ports.QuerySpec) (*domain.LTVReport, error) {
	if err := expectEntity(q, domain.EntityUserLTV); err != nil {
		return nil, err
	}

	frags, schema, err := resolveLTV(q.Dimension, q.Window)
	if err != nil {
		return nil, err
	}

	query, err := fromFragments(frags).Build(schema.Name)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &domain.LTVReport{GroupBy: q.Dimension, Window: q.Window}
	recs := MarshalRows(rows, schema)

	if q.Dimension == domain.DimensionNone {
		report.Users = make([]domain.LTVUser, 0, len(recs))
		for _, rec := range recs {
			report.Users = append(report.Users, domain.LTVUser{
				UserID:            rec.Text("user_id"),
				FirstPurchaseDate: rec.Text("first_purchase_date"),
				PurchaseCount:     rec.Int("purchase_count"),
				Value:             rec.Float("ltv_value"),
			})
		}
		return report, nil
	}

	report.Groups = make([]domain.LTVGroup, 0, len(recs))
	for _, rec := range recs {
		report.Groups = append(report.Groups, domain.LTVGroup{
			Key:       rec.Text(schema.GroupKey),
			UserCount: rec.Int("user_count"),
			Value:     rec.Float("ltv_value"),
			Average:   rec.Float("avg_ltv"),
		})
	}

	return report, nil
}

func (r *AnalyticsRepository) LTVOverview(ctx context.Context) (*domain.LTVOverview, error) {
	schema := ltvOverviewSchema()

	// HAVING turns an empty table into zero rows instead of one row of NULLs.
	query, err := selectFrom(entityTables[domain.EntityUserLTV]).
		Columns(ltvOverviewColumns()...).
		Having("COUNT(*) > 0").
		Build(schema.Name)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	rec, err := MarshalSingle(rows, schema)
	if err != nil {
		return nil, err
	}

	out := &domain.LTVOverview{
		UserCount:        rec.Int("user_count"),
		PayingUsers:      rec.Int("paying_users"),
		TotalLTV:         rec.Float("total_ltv"),
		AvgPurchaseCount: rec.Float("avg_purchase_count"),
		Averages:         make(map[domain.Window]float64, len(domain.Windows)),
	}
	for _, w := range domain.Windows {
		out.Averages[w] = rec.Float("avg_" + windowColumns[w])
	}

	return out, nil
}

func expectEntity(q ports.QuerySpec, want domain.Entity) error {
	if q.Entity != want {
		return fmt.Errorf("query reads %s, got entity %q", want, q.Entity)
	}
	return nil
}
