package dialect

import "fmt"

func init() {
	Register("mssql", &mssql{})
}

// mssql targets SQL Server dialects without native row-limiting syntax.
// Pagination is emulated with a ROW_NUMBER() OVER(...) derived table: the
// base query is wrapped, every row is ranked under the caller's ordering,
// and the outer query filters the rank into the requested window.
type mssql struct{}

func (d *mssql) Name() string {
	return "mssql"
}

func (d *mssql) Quote(name string) string {
	return fmt.Sprintf("[%s]", name)
}

func (d *mssql) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index)
}

// PageSQL emits
//
//	SELECT * FROM (
//	  SELECT orig_query.*, ROW_NUMBER() OVER( <order> ) AS rno__row__index
//	  FROM (<baseSQL><residual>) orig_query
//	) rno_subq WHERE rno__row__index BETWEEN <offset+1> AND <offset+rowCount>
//
// collapsed to a single line. ROW_NUMBER ranks from 1, so the window is the
// 1-based inclusive range [offset+1, offset+rowCount]. The ORDER BY inside
// OVER must match the order the caller wants the pages walked in; residual
// GROUP BY/HAVING fragments stay on the inner query where they belong.
func (d *mssql) PageSQL(baseSQL string, order *OrderBy, rowCount, offset int) (string, error) {
	if err := checkPage(rowCount, offset); err != nil {
		return "", err
	}
	lower := offset + 1
	upper := offset + rowCount
	sql := fmt.Sprintf(`
		SELECT * FROM (
			SELECT orig_query.*, ROW_NUMBER() OVER( %s ) AS rno__row__index
			FROM (%s%s) orig_query
		) rno_subq WHERE rno__row__index BETWEEN %d AND %d`,
		order.Clause(), baseSQL, order.ResidualClause(), lower, upper,
	)
	return collapseSpace(sql), nil
}
