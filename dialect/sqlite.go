package dialect

import "fmt"

func init() {
	Register("sqlite3", &sqlite{})
}

type sqlite struct{}

func (d *sqlite) Name() string {
	return "sqlite3"
}

func (d *sqlite) Quote(name string) string {
	return fmt.Sprintf("`%s`", name)
}

func (d *sqlite) Placeholder(index int) string {
	return "?"
}

func (d *sqlite) PageSQL(baseSQL string, order *OrderBy, rowCount, offset int) (string, error) {
	if err := checkPage(rowCount, offset); err != nil {
		return "", err
	}
	return limitOffsetSQL(baseSQL, order, rowCount, offset), nil
}
