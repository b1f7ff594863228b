package dialect

import "fmt"

func init() {
	Register("postgres", &postgres{})
}

type postgres struct{}

func (d *postgres) Name() string {
	return "postgres"
}

func (d *postgres) Quote(name string) string {
	return fmt.Sprintf("%q", name)
}

func (d *postgres) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (d *postgres) PageSQL(baseSQL string, order *OrderBy, rowCount, offset int) (string, error) {
	if err := checkPage(rowCount, offset); err != nil {
		return "", err
	}
	return limitOffsetSQL(baseSQL, order, rowCount, offset), nil
}
