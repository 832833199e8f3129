package sqlstore

import (
	"fmt"

	"attribution-analytics-service/internal/analytics/core/domain"
)

// Every identifier that reaches SQL text is listed in this file.

var entityTables = map[domain.Entity]string{
	domain.EntityUsers:        "users",
	domain.EntityEvents:       "events",
	domain.EntityDailyStats:   "daily_stats",
	domain.EntityCountryStats: "country_stats",
	domain.EntityDeviceStats:  "device_stats",
	domain.EntityUserLTV:      "user_ltv",
}

func tableFor(e domain.Entity) (string, error) {
	t, ok := entityTables[e]
	if !ok {
		return "", fmt.Errorf("unknown entity %q", e)
	}
	return t, nil
}

// segmentKeys names the grouping column of each per-segment rollup table.
var segmentKeys = map[domain.Entity]string{
	domain.EntityCountryStats: "country_code",
	domain.EntityDeviceStats:  "device_category",
}

var windowColumns = map[domain.Window]string{
	domain.Window1D:    "ltv_1d",
	domain.Window7D:    "ltv_7d",
	domain.Window14D:   "ltv_14d",
	domain.Window30D:   "ltv_30d",
	domain.Window60D:   "ltv_60d",
	domain.Window90D:   "ltv_90d",
	domain.WindowTotal: "ltv_total",
}

// asText projects a date column as its stored text. Drivers decode
// DATE-declared columns into time values otherwise.
func asText(col string) string {
	return "CAST(" + col + " AS TEXT)"
}

const (
	ltvSource = "user_ltv l"
	usersJoin = "JOIN users u ON u.appsflyer_id = l.appsflyer_id"
)

type dimensionColumns struct {
	key     string // qualified source expression
	alias   string // output column and group key
	date    bool
	join    string
	orderBy []string
}

var ltvDimensions = map[domain.Dimension]dimensionColumns{
	domain.DimensionCountry: {
		key:     "u.country_code",
		alias:   "country",
		join:    usersJoin,
		orderBy: []string{"ltv_value DESC", "country ASC"},
	},
	domain.DimensionDevice: {
		key:     "u.device_category",
		alias:   "device",
		join:    usersJoin,
		orderBy: []string{"ltv_value DESC", "device ASC"},
	},
	domain.DimensionDate: {
		key:     "l.first_purchase_date",
		alias:   "date",
		date:    true,
		orderBy: []string{"date DESC"},
	},
}

// fragments is resolver output handed to the builder.
type fragments struct {
	Select  []string
	From    string
	Joins   []string
	GroupBy []string
	OrderBy []string
}

// resolveLTV maps a dimension and window onto fixed SQL fragments and the
// schema their rows decode with. Unknown values are rejected, never spliced.
func resolveLTV(dim domain.Dimension, win domain.Window) (fragments, Schema, error) {
	col, ok := windowColumns[win]
	if !ok {
		return fragments{}, Schema{}, domain.NewValidationError("window", string(win), "unknown LTV window")
	}
	value := "l." + col

	if dim == domain.DimensionNone {
		return fragments{
			Select: []string{
				"l.appsflyer_id AS user_id",
				asText("l.first_purchase_date") + " AS first_purchase_date",
				"l.purchase_count AS purchase_count",
				value + " AS ltv_value",
			},
			From:    ltvSource,
			OrderBy: []string{"ltv_value DESC", "user_id ASC"},
		}, ltvUserSchema, nil
	}

	d, ok := ltvDimensions[dim]
	if !ok {
		return fragments{}, Schema{}, domain.NewValidationError("groupBy", string(dim), "unknown LTV dimension")
	}

	proj := d.key
	if d.date {
		proj = asText(d.key)
	}

	f := fragments{
		Select: []string{
			proj + " AS " + d.alias,
			"COUNT(DISTINCT l.appsflyer_id) AS user_count",
			"SUM(" + value + ") AS ltv_value",
			"AVG(" + value + ") AS avg_ltv",
		},
		From:    ltvSource,
		GroupBy: []string{d.key},
		OrderBy: d.orderBy,
	}
	if d.join != "" {
		f.Joins = []string{d.join}
	}

	return f, ltvGroupSchema(d.alias), nil
}

// ltvOverviewColumns projects dataset-wide LTV aggregates, one average per
// window in ascending horizon order.
func ltvOverviewColumns() []string {
	cols := []string{
		"COUNT(*) AS user_count",
		"SUM(CASE WHEN purchase_count > 0 THEN 1 ELSE 0 END) AS paying_users",
		"SUM(ltv_total) AS total_ltv",
		"AVG(purchase_count) AS avg_purchase_count",
	}
	for _, w := range domain.Windows {
		c := windowColumns[w]
		cols = append(cols, "AVG("+c+") AS avg_"+c)
	}
	return cols
}
