package dialect

import "fmt"

func init() {
	Register("mysql", &mysql{})
}

type mysql struct{}

func (d *mysql) Name() string {
	return "mysql"
}

func (d *mysql) Quote(name string) string {
	return fmt.Sprintf("`%s`", name)
}

func (d *mysql) Placeholder(index int) string {
	return "?"
}

// PageSQL appends native LIMIT/OFFSET. The caller's ordering is rendered as
// a plain ORDER BY on the base query; an unordered query gets no ORDER BY at
// all since no window function is involved.
func (d *mysql) PageSQL(baseSQL string, order *OrderBy, rowCount, offset int) (string, error) {
	if err := checkPage(rowCount, offset); err != nil {
		return "", err
	}
	return limitOffsetSQL(baseSQL, order, rowCount, offset), nil
}

// limitOffsetSQL is the shared rendering for engines with native
// LIMIT/OFFSET support.
func limitOffsetSQL(baseSQL string, order *OrderBy, rowCount, offset int) string {
	orderClause := ""
	if order != nil && len(order.Columns) > 0 {
		orderClause = " " + order.Clause()
	}
	sql := fmt.Sprintf("%s%s%s LIMIT %d OFFSET %d",
		baseSQL, order.ResidualClause(), orderClause, rowCount, offset)
	return collapseSpace(sql)
}
