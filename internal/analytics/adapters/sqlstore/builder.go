package sqlstore

import (
	"fmt"
	"strings"

	"attribution-analytics-service/internal/analytics/core/domain"
)

// Query is finished SQL text plus its positional arguments. Name labels the
// query in logs and metrics.
type Query struct {
	Name string
	SQL  string
	Args []any
}

// selectBuilder assembles a SELECT from fragments. Identifiers passed to it
// must come from the fixed tables in resolve.go; values only travel through
// args. Args are kept per clause and emitted in clause order so they line up
// with the placeholders.
type selectBuilder struct {
	columns    []string
	from       string
	joins      []string
	where      []string
	whereArgs  []any
	groupBy    []string
	having     []string
	havingArgs []any
	orderBy    []string
	limit      int
	hasLimit   bool
}

func selectFrom(from string) *selectBuilder {
	return &selectBuilder{from: from}
}

// fromFragments seeds a builder with resolver output.
func fromFragments(f fragments) *selectBuilder {
	b := selectFrom(f.From).Columns(f.Select...).GroupBy(f.GroupBy...).OrderBy(f.OrderBy...)
	for _, j := range f.Joins {
		b.Join(j)
	}
	return b
}

func (b *selectBuilder) Columns(cols ...string) *selectBuilder {
	b.columns = append(b.columns, cols...)
	return b
}

func (b *selectBuilder) Join(clause string) *selectBuilder {
	b.joins = append(b.joins, clause)
	return b
}

func (b *selectBuilder) Where(cond string, args ...any) *selectBuilder {
	b.where = append(b.where, cond)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// WhereDate adds `col = ?` or `col BETWEEN ? AND ?`. A nil filter adds nothing.
func (b *selectBuilder) WhereDate(col string, f *domain.DateFilter) *selectBuilder {
	if f == nil {
		return b
	}
	if f.IsRange {
		return b.Where(col+" BETWEEN ? AND ?", f.Start, f.End)
	}
	return b.Where(col+" = ?", f.Start)
}

func (b *selectBuilder) GroupBy(cols ...string) *selectBuilder {
	b.groupBy = append(b.groupBy, cols...)
	return b
}

func (b *selectBuilder) Having(cond string, args ...any) *selectBuilder {
	b.having = append(b.having, cond)
	b.havingArgs = append(b.havingArgs, args...)
	return b
}

func (b *selectBuilder) OrderBy(terms ...string) *selectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

func (b *selectBuilder) Limit(n int) *selectBuilder {
	b.limit = n
	b.hasLimit = true
	return b
}

// Build renders the statement. It fails when the projection or source is
// missing, or when placeholder and argument counts disagree.
func (b *selectBuilder) Build(name string) (Query, error) {
	if len(b.columns) == 0 {
		return Query{}, fmt.Errorf("%s: no columns selected", name)
	}
	if b.from == "" {
		return Query{}, fmt.Errorf("%s: no source table", name)
	}

	var sb strings.Builder
	args := make([]any, 0, len(b.whereArgs)+len(b.havingArgs)+1)

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)

	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
		args = append(args, b.whereArgs...)
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.having) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(strings.Join(b.having, " AND "))
		args = append(args, b.havingArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.hasLimit {
		sb.WriteString(" LIMIT ?")
		args = append(args, b.limit)
	}

	sqlText := sb.String()
	if n := strings.Count(sqlText, "?"); n != len(args) {
		return Query{}, fmt.Errorf("%s: %d placeholders but %d args", name, n, len(args))
	}

	return Query{Name: name, SQL: sqlText, Args: args}, nil
}
