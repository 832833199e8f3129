package sqlstore

import "attribution-analytics-service/internal/analytics/core/domain"

var overviewSchema = Schema{
	Name: "overview",
	Fields: []Field{
		IntField("user_count", 0),
		IntField("event_count", 0),
		IntField("device_count", 0),
		FloatField("total_revenue", 0),
	},
}

var timelineSchema = Schema{
	Name:     "timeline",
	GroupKey: "stat_date",
	Fields: []Field{
		StringField("stat_date", ""),
		IntField("user_count", 0),
		IntField("event_count", 0),
		FloatField("revenue_usd", 0),
		IntField("device_count", 0),
	},
}

func segmentTotalsSchema(key string) Schema {
	return Schema{
		Name:     "segment_totals_" + key,
		GroupKey: key,
		Fields: []Field{
			StringField(key, ""),
			IntField("total_users", 0),
			FloatField("revenue", 0),
		},
	}
}

func segmentUsersSchema(key string) Schema {
	return Schema{
		Name:     "details_" + key,
		GroupKey: key,
		Fields: []Field{
			StringField(key, ""),
			IntField("user_count", 0),
		},
	}
}

var detailsRevenueSchema = Schema{
	Name: "details_revenue",
	Fields: []Field{
		FloatField("total_revenue", 0),
	},
}

var ltvUserSchema = Schema{
	Name:     "ltv_users",
	GroupKey: "user_id",
	Fields: []Field{
		StringField("user_id", ""),
		StringField("first_purchase_date", ""),
		IntField("purchase_count", 0),
		FloatField("ltv_value", 0),
	},
}

func ltvGroupSchema(key string) Schema {
	return Schema{
		Name:     "ltv_by_" + key,
		GroupKey: key,
		Fields: []Field{
			StringField(key, ""),
			IntField("user_count", 0),
			FloatField("ltv_value", 0),
			FloatField("avg_ltv", 0),
		},
	}
}

func ltvOverviewSchema() Schema {
	fields := []Field{
		IntField("user_count", 0),
		IntField("paying_users", 0),
		FloatField("total_ltv", 0),
		FloatField("avg_purchase_count", 0),
	}
	for _, w := range domain.Windows {
		fields = append(fields, FloatField("avg_"+windowColumns[w], 0))
	}
	return Schema{Name: "ltv_overview", Fields: fields}
}
