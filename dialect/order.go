package dialect

import (
	"regexp"
	"strings"
)

// OrderColumn is one (expression, direction) pair of an ORDER BY clause.
type OrderColumn struct {
	Expr string
	Desc bool
}

// OrderBy describes how a result set is ordered. Columns drive the ORDER BY
// text; Residual holds trailing clause fragments (GROUP BY, HAVING) that were
// written after the base query and must still apply to it once the ORDER BY
// has been extracted.
type OrderBy struct {
	Columns  []OrderColumn
	Residual []string
}

// placeholderOrder keeps window functions well-defined when the caller did
// not order the query: a constant scalar subquery is a valid ORDER BY target
// on every engine and imposes no particular row order.
const placeholderOrder = "ORDER BY (SELECT 1)"

// Clause renders the ORDER BY text. An empty or nil spec yields the
// constant placeholder ordering.
func (o *OrderBy) Clause() string {
	if o == nil || len(o.Columns) == 0 {
		return placeholderOrder
	}
	parts := make([]string, 0, len(o.Columns))
	for _, c := range o.Columns {
		dir := " ASC"
		if c.Desc {
			dir = " DESC"
		}
		parts = append(parts, c.Expr+dir)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// ResidualClause renders the clause fragments that stay attached to the base
// query, with a leading space, or "" when there are none.
func (o *OrderBy) ResidualClause() string {
	if o == nil || len(o.Residual) == 0 {
		return ""
	}
	return " " + strings.Join(o.Residual, " ")
}

var spaceRun = regexp.MustCompile(`\s+`)

// collapseSpace folds newlines and runs of whitespace into single spaces.
// Purely cosmetic; token boundaries are preserved.
func collapseSpace(sql string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(sql), " ")
}
