package sqlstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/analytics/core/ports"
	"attribution-analytics-service/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedRow struct {
	sql  string
	args []any
}

var fixture = []seedRow{
	{"INSERT INTO users (appsflyer_id, first_seen_date, last_seen_date, country_code, device_category) VALUES (?, ?, ?, ?, ?)",
		[]any{"u1", "2024-01-01", "2024-01-02", "US", "mobile"}},
	{"INSERT INTO users (appsflyer_id, first_seen_date, last_seen_date, country_code, device_category) VALUES (?, ?, ?, ?, ?)",
		[]any{"u2", "2024-01-01", "2024-01-01", "US", "tablet"}},
	{"INSERT INTO users (appsflyer_id, first_seen_date, last_seen_date, country_code, device_category) VALUES (?, ?, ?, ?, ?)",
		[]any{"u3", "2024-01-01", "2024-01-02", "DE", "mobile"}},

	{"INSERT INTO events (appsflyer_id, event_name, created_date, country_code, device_category, event_revenue_usd) VALUES (?, ?, ?, ?, ?, ?)",
		[]any{"u1", "af_purchase", "2024-01-01", "US", "mobile", 9.99}},
	{"INSERT INTO events (appsflyer_id, event_name, created_date, country_code, device_category, event_revenue_usd) VALUES (?, ?, ?, ?, ?, ?)",
		[]any{"u1", "af_app_opened", "2024-01-01", "US", "mobile", nil}},
	{"INSERT INTO events (appsflyer_id, event_name, created_date, country_code, device_category, event_revenue_usd) VALUES (?, ?, ?, ?, ?, ?)",
		[]any{"u2", "af_purchase", "2024-01-01", "US", "tablet", 20.0}},
	{"INSERT INTO events (appsflyer_id, event_name, created_date, country_code, device_category, event_revenue_usd) VALUES (?, ?, ?, ?, ?, ?)",
		[]any{"u3", "af_app_opened", "2024-01-01", "DE", "mobile", nil}},
	{"INSERT INTO events (appsflyer_id, event_name, created_date, country_code, device_category, event_revenue_usd) VALUES (?, ?, ?, ?, ?, ?)",
		[]any{"u3", "af_purchase", "2024-01-02", "DE", "mobile", 5.0}},

	{"INSERT INTO daily_stats (stat_date, user_count, event_count, revenue_usd, device_count) VALUES (?, ?, ?, ?, ?)",
		[]any{"2024-01-01", 10, 100, 50.5, 2}},
	{"INSERT INTO daily_stats (stat_date, user_count, event_count, revenue_usd, device_count) VALUES (?, ?, ?, ?, ?)",
		[]any{"2024-01-02", 12, 120, 60.0, 3}},
	{"INSERT INTO daily_stats (stat_date, user_count, event_count, revenue_usd, device_count) VALUES (?, ?, ?, ?, ?)",
		[]any{"2024-01-03", 8, 80, 0.0, 1}},

	{"INSERT INTO country_stats (stat_date, country_code, user_count, revenue_usd) VALUES (?, ?, ?, ?)",
		[]any{"2024-01-01", "US", 2, 29.99}},
	{"INSERT INTO country_stats (stat_date, country_code, user_count, revenue_usd) VALUES (?, ?, ?, ?)",
		[]any{"2024-01-01", "DE", 1, 0.0}},
	{"INSERT INTO country_stats (stat_date, country_code, user_count, revenue_usd) VALUES (?, ?, ?, ?)",
		[]any{"2024-01-02", "DE", 1, 5.0}},

	{"INSERT INTO device_stats (stat_date, device_category, user_count, revenue_usd) VALUES (?, ?, ?, ?)",
		[]any{"2024-01-01", "mobile", 2, 9.99}},
	{"INSERT INTO device_stats (stat_date, device_category, user_count, revenue_usd) VALUES (?, ?, ?, ?)",
		[]any{"2024-01-01", "tablet", 1, 20.0}},

	{"INSERT INTO user_ltv (appsflyer_id, first_purchase_date, ltv_30d, ltv_total, purchase_count) VALUES (?, ?, ?, ?, ?)",
		[]any{"u1", "2024-01-01", 10.0, 12.0, 2}},
	{"INSERT INTO user_ltv (appsflyer_id, first_purchase_date, ltv_30d, ltv_total, purchase_count) VALUES (?, ?, ?, ?, ?)",
		[]any{"u2", "2024-01-02", 20.0, 25.0, 1}},
	{"INSERT INTO user_ltv (appsflyer_id, first_purchase_date, ltv_30d, ltv_total, purchase_count) VALUES (?, ?, ?, ?, ?)",
		[]any{"u3", "2024-01-02", 5.0, 5.0, 1}},
}

// newTestStore creates the schema in a temp file, applies rows and reopens
// the file read-only the way the server does.
func newTestStore(t *testing.T, rows []seedRow) *Executor {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.db")

	w, err := Open(ctx, Options{Driver: DriverSQLite, Path: path, MaxOpenConns: 1})
	require.NoError(t, err)

	schema, err := os.ReadFile(filepath.Join("testdata", "schema.sql"))
	require.NoError(t, err)

	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := w.Exec(ctx, Query{Name: "schema", SQL: stmt})
		require.NoError(t, err)
	}
	for _, r := range rows {
		_, err := w.Exec(ctx, Query{Name: "seed", SQL: r.sql, Args: r.args})
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	ro, err := Open(ctx, Options{Driver: DriverSQLite, Path: path, ReadOnly: true, MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { ro.Close() })

	return ro
}

func TestStore_Overview(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))

	res, err := repo.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.UserCount)
	assert.Equal(t, int64(5), res.EventCount)
	assert.Equal(t, int64(2), res.DeviceCount)
	assert.InDelta(t, 34.99, res.TotalRevenue, 1e-9)
}

func TestStore_Overview_EmptyTables(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, nil))

	res, err := repo.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Overview{}, *res)
}

func TestStore_Timeline(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))
	ctx := context.Background()

	f := domain.ParseDateFilter("2024-01-01|2024-01-02")
	points, err := repo.Timeline(ctx, ports.QuerySpec{Entity: domain.EntityDailyStats, Date: &f})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.Equal(t, "2024-01-01", points[1].Date)
	assert.Equal(t, int64(12), points[0].UserCount)
	assert.InDelta(t, 50.5, points[1].Revenue, 1e-9)

	points, err = repo.Timeline(ctx, ports.QuerySpec{Entity: domain.EntityDailyStats, Limit: 2})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-03", points[0].Date)
	assert.Equal(t, "2024-01-02", points[1].Date)

	single := domain.ParseDateFilter("2024-01-03")
	points, err = repo.Timeline(ctx, ports.QuerySpec{Entity: domain.EntityDailyStats, Date: &single})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int64(1), points[0].DeviceCount)
}

func TestStore_SegmentTotals(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))
	ctx := context.Background()

	all, err := repo.SegmentTotals(ctx, ports.QuerySpec{Entity: domain.EntityCountryStats})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "US", all[0].Key)
	assert.Equal(t, int64(2), all[0].Users)
	assert.Equal(t, "DE", all[1].Key)
	assert.Equal(t, int64(2), all[1].Users)
	assert.InDelta(t, 5.0, all[1].Revenue, 1e-9)

	f := domain.ParseDateFilter("2024-01-02")
	day, err := repo.SegmentTotals(ctx, ports.QuerySpec{Entity: domain.EntityCountryStats, Date: &f})
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "DE", day[0].Key)

	devices, err := repo.SegmentTotals(ctx, ports.QuerySpec{Entity: domain.EntityDeviceStats})
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "tablet", devices[0].Key)
}

func TestStore_DayDetails(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))

	res, err := repo.DayDetails(context.Background(), "2024-01-01")
	require.NoError(t, err)

	assert.InDelta(t, 29.99, res.TotalRevenue, 1e-9)
	assert.Equal(t, []domain.SegmentUsers{{Key: "US", Users: 2}, {Key: "DE", Users: 1}}, res.Countries)
	assert.Equal(t, []domain.SegmentUsers{{Key: "mobile", Users: 2}, {Key: "tablet", Users: 1}}, res.Devices)

	empty, err := repo.DayDetails(context.Background(), "1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty.Countries)
	assert.Zero(t, empty.TotalRevenue)
}

func TestStore_LTV(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))
	ctx := context.Background()

	byCountry, err := repo.LTV(ctx, ports.QuerySpec{
		Entity:    domain.EntityUserLTV,
		Dimension: domain.DimensionCountry,
		Window:    domain.Window30D,
	})
	require.NoError(t, err)
	require.Len(t, byCountry.Groups, 2)
	assert.Equal(t, domain.LTVGroup{Key: "US", UserCount: 2, Value: 30, Average: 15}, byCountry.Groups[0])
	assert.Equal(t, domain.LTVGroup{Key: "DE", UserCount: 1, Value: 5, Average: 5}, byCountry.Groups[1])

	byDate, err := repo.LTV(ctx, ports.QuerySpec{
		Entity:    domain.EntityUserLTV,
		Dimension: domain.DimensionDate,
		Window:    domain.WindowTotal,
	})
	require.NoError(t, err)
	require.Len(t, byDate.Groups, 2)
	assert.Equal(t, "2024-01-02", byDate.Groups[0].Key)
	assert.InDelta(t, 30.0, byDate.Groups[0].Value, 1e-9)

	users, err := repo.LTV(ctx, ports.QuerySpec{Entity: domain.EntityUserLTV, Window: domain.WindowTotal})
	require.NoError(t, err)
	require.Len(t, users.Users, 3)
	assert.Equal(t, "u2", users.Users[0].UserID)
	assert.Equal(t, "2024-01-02", users.Users[0].FirstPurchaseDate)
	assert.Equal(t, "u1", users.Users[1].UserID)
	assert.Equal(t, int64(2), users.Users[1].PurchaseCount)
}

func TestStore_LTV_NullValuesDefaultToZero(t *testing.T) {
	rows := append([]seedRow{}, fixture...)
	rows = append(rows,
		seedRow{"INSERT INTO users (appsflyer_id, first_seen_date, last_seen_date, country_code, device_category) VALUES (?, ?, ?, ?, ?)",
			[]any{"u4", "2024-01-03", "2024-01-03", "FR", "desktop"}},
		seedRow{"INSERT INTO user_ltv (appsflyer_id, first_purchase_date, ltv_1d, ltv_7d, ltv_14d, ltv_30d, ltv_60d, ltv_90d, ltv_total, purchase_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			[]any{"u4", nil, nil, nil, nil, nil, nil, nil, nil, nil}},
	)
	repo := NewAnalyticsRepository(newTestStore(t, rows))
	ctx := context.Background()

	for _, w := range domain.Windows {
		users, err := repo.LTV(ctx, ports.QuerySpec{Entity: domain.EntityUserLTV, Window: w})
		require.NoError(t, err)
		require.Len(t, users.Users, 4)

		var found bool
		for _, u := range users.Users {
			if u.UserID != "u4" {
				continue
			}
			found = true
			assert.Equal(t, domain.LTVUser{UserID: "u4"}, u, "window %s", w)
		}
		assert.True(t, found, "window %s: u4 missing", w)
	}

	byCountry, err := repo.LTV(ctx, ports.QuerySpec{
		Entity:    domain.EntityUserLTV,
		Dimension: domain.DimensionCountry,
		Window:    domain.Window30D,
	})
	require.NoError(t, err)
	require.Len(t, byCountry.Groups, 3)
	assert.Equal(t, domain.LTVGroup{Key: "FR", UserCount: 1}, byCountry.Groups[2])
}

func TestStore_DatesKeepStoredText(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, []seedRow{
		{"INSERT INTO daily_stats (stat_date, user_count, event_count, revenue_usd, device_count) VALUES (?, ?, ?, ?, ?)",
			[]any{"2024-01-03T10:00:00", 1, 2, 3.5, 1}},
		{"INSERT INTO user_ltv (appsflyer_id, first_purchase_date, ltv_total, purchase_count) VALUES (?, ?, ?, ?)",
			[]any{"u1", "2024-01-03T10:00:00", 4.0, 1}},
	}))
	ctx := context.Background()

	points, err := repo.Timeline(ctx, ports.QuerySpec{Entity: domain.EntityDailyStats, Limit: 1})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-03T10:00:00", points[0].Date)

	users, err := repo.LTV(ctx, ports.QuerySpec{Entity: domain.EntityUserLTV, Window: domain.WindowTotal})
	require.NoError(t, err)
	require.Len(t, users.Users, 1)
	assert.Equal(t, "2024-01-03T10:00:00", users.Users[0].FirstPurchaseDate)

	byDate, err := repo.LTV(ctx, ports.QuerySpec{
		Entity:    domain.EntityUserLTV,
		Dimension: domain.DimensionDate,
		Window:    domain.WindowTotal,
	})
	require.NoError(t, err)
	require.Len(t, byDate.Groups, 1)
	assert.Equal(t, "2024-01-03T10:00:00", byDate.Groups[0].Key)
}

func TestStore_LTVOverview(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))

	res, err := repo.LTVOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.UserCount)
	assert.Equal(t, int64(3), res.PayingUsers)
	assert.InDelta(t, 42.0, res.TotalLTV, 1e-9)
	assert.InDelta(t, 35.0/3, res.Averages[domain.Window30D], 1e-9)
	assert.Zero(t, res.Averages[domain.Window1D])
}

func TestStore_LTVOverview_EmptyTable(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, nil))

	_, err := repo.LTVOverview(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestStore_ConcurrentReads(t *testing.T) {
	repo := NewAnalyticsRepository(newTestStore(t, fixture))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Overview(context.Background()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent overview: %v", err)
	}
}

func TestExecutor_ReadOnlyRejectsWrites(t *testing.T) {
	store := newTestStore(t, nil)

	_, err := store.Exec(context.Background(), Query{
		Name: "write",
		SQL:  "INSERT INTO daily_stats (stat_date) VALUES (?)",
		Args: []any{"2024-02-01"},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrConnection))
}

func TestExecutor_ConnectionGauge(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Options{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "gauge.db"), MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	before := testutil.ToFloat64(metrics.OpenConnections)

	store.mu.RLock()
	_, release, err := store.borrow(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OpenConnections))
	release()
	store.mu.RUnlock()
	assert.Equal(t, before, testutil.ToFloat64(metrics.OpenConnections))

	_, err = store.Exec(ctx, Query{Name: "schema", SQL: "CREATE TABLE t (x INTEGER)"})
	require.NoError(t, err)
	_, err = store.Query(ctx, Query{Name: "read", SQL: "SELECT x FROM t"})
	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(metrics.OpenConnections))
}

func TestExecutor_BadStatementHidesSQL(t *testing.T) {
	store := newTestStore(t, nil)

	_, err := store.Query(context.Background(), Query{Name: "broken", SQL: "SELECT nope FROM missing_table"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPrepare) || errors.Is(err, domain.ErrExecution), "got %v", err)
	assert.NotContains(t, err.Error(), "SELECT nope")

	var qe *domain.QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "SELECT nope FROM missing_table", qe.Statement)
}

func TestExecutor_Closed(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Close())

	_, err := store.Query(context.Background(), Query{Name: "overview", SQL: "SELECT 1"})
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.ErrorIs(t, store.Ping(context.Background()), domain.ErrConnection)

	// second close is a no-op
	assert.NoError(t, store.Close())
}

func TestOpen_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, Options{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "missing.db"), ReadOnly: true})
	assert.ErrorIs(t, err, domain.ErrConnection)

	_, err = Open(ctx, Options{Driver: DriverSQLite})
	assert.ErrorIs(t, err, domain.ErrConnection)

	_, err = Open(ctx, Options{Driver: DriverPostgres})
	assert.ErrorIs(t, err, domain.ErrConnection)

	_, err = Open(ctx, Options{Driver: "mysql", DSN: "x"})
	assert.ErrorIs(t, err, domain.ErrConnection)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:db/app.db?_pragma=busy_timeout(5000)", sqliteDSN("db/app.db", false))
	assert.Equal(t, "file:db/app.db?_pragma=busy_timeout(5000)&mode=ro&_pragma=query_only(1)", sqliteDSN("db/app.db", true))
}
