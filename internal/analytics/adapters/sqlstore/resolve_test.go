package sqlstore

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"attribution-analytics-service/internal/analytics/core/domain"
)

// bareColumn matches LTV table columns that are not prefixed with an alias.
var bareColumn = regexp.MustCompile(`(^|[^.\w])(appsflyer_id|ltv_\w+|first_purchase_date|country_code|device_category|purchase_count)\b`)

func TestResolveLTV_AllCombinationsBuild(t *testing.T) {
	dims := []domain.Dimension{domain.DimensionNone, domain.DimensionCountry, domain.DimensionDevice, domain.DimensionDate}

	for _, d := range dims {
		for _, w := range domain.Windows {
			frags, schema, err := resolveLTV(d, w)
			if err != nil {
				t.Fatalf("resolveLTV(%q,%q): %v", d, w, err)
			}

			q, err := fromFragments(frags).Build(schema.Name)
			if err != nil {
				t.Fatalf("build(%q,%q): %v", d, w, err)
			}

			if !strings.Contains(q.SQL, "l."+windowColumns[w]) {
				t.Errorf("(%q,%q) does not read window column: %s", d, w, q.SQL)
			}
			if len(q.Args) != 0 {
				t.Errorf("(%q,%q) expected no args, got %v", d, w, q.Args)
			}

			// strip aliases ("AS x") and ORDER BY which reference output names
			body := q.SQL
			if i := strings.Index(body, " ORDER BY "); i >= 0 {
				body = body[:i]
			}
			body = regexp.MustCompile(`AS \w+`).ReplaceAllString(body, "")
			body = strings.Replace(body, "user_ltv l", "", 1)
			if m := bareColumn.FindString(body); m != "" {
				t.Errorf("(%q,%q) unqualified column %q in %s", d, w, m, q.SQL)
			}
		}
	}
}

func TestResolveLTV_GroupedByCountryJoinsUsers(t *testing.T) {
	frags, schema, err := resolveLTV(domain.DimensionCountry, domain.Window30D)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, err := fromFragments(frags).Build(schema.Name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT u.country_code AS country, COUNT(DISTINCT l.appsflyer_id) AS user_count, SUM(l.ltv_30d) AS ltv_value, AVG(l.ltv_30d) AS avg_ltv " +
		"FROM user_ltv l JOIN users u ON u.appsflyer_id = l.appsflyer_id " +
		"GROUP BY u.country_code ORDER BY ltv_value DESC, country ASC"
	if q.SQL != want {
		t.Fatalf("unexpected sql:\n got: %s\nwant: %s", q.SQL, want)
	}
	if schema.GroupKey != "country" {
		t.Fatalf("expected group key country, got %s", schema.GroupKey)
	}
}

func TestResolveLTV_DatesProjectedAsText(t *testing.T) {
	cases := []struct {
		dim  domain.Dimension
		want []string
	}{
		{domain.DimensionDate, []string{"SELECT CAST(l.first_purchase_date AS TEXT) AS date,", "GROUP BY l.first_purchase_date "}},
		{domain.DimensionNone, []string{"CAST(l.first_purchase_date AS TEXT) AS first_purchase_date"}},
	}

	for _, tc := range cases {
		frags, schema, err := resolveLTV(tc.dim, domain.WindowTotal)
		if err != nil {
			t.Fatalf("resolveLTV(%q): %v", tc.dim, err)
		}
		q, err := fromFragments(frags).Build(schema.Name)
		if err != nil {
			t.Fatalf("build(%q): %v", tc.dim, err)
		}
		for _, frag := range tc.want {
			if !strings.Contains(q.SQL, frag) {
				t.Errorf("(%q) missing %q in %s", tc.dim, frag, q.SQL)
			}
		}
	}
}

func TestResolveLTV_RejectsUnknownValues(t *testing.T) {
	if _, _, err := resolveLTV(domain.DimensionNone, domain.Window("5d; DROP TABLE users")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for window, got %v", err)
	}
	if _, _, err := resolveLTV(domain.Dimension("platform"), domain.WindowTotal); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for dimension, got %v", err)
	}
}

func TestTableFor(t *testing.T) {
	if tbl, err := tableFor(domain.EntityDailyStats); err != nil || tbl != "daily_stats" {
		t.Fatalf("got %q, %v", tbl, err)
	}
	if _, err := tableFor(domain.Entity("sqlite_master")); err == nil {
		t.Fatalf("expected error for unknown entity")
	}
}
