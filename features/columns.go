package features

import (
	"fmt"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
)

/*
ColumnDropper removes listed columns, absent columns are ignored
*/
type ColumnDropper struct {
	Columns []string
}

func (d *ColumnDropper) Fit(*tables.Table, []float64) error {
	return nil
}

func (d *ColumnDropper) Transform(t *tables.Table) (*tables.Table, error) {
	return t.Except(d.Columns...), nil
}

/*
DateFeatures derives year and month name label columns from the date column
*/
type DateFeatures struct {
	DateColumn  string
	YearColumn  string
	MonthColumn string
}

func (d *DateFeatures) Fit(*tables.Table, []float64) error {
	return nil
}

func (d *DateFeatures) Transform(t *tables.Table) (*tables.Table, error) {
	c, err := t.Column(d.DateColumn)
	if err != nil {
		return nil, err
	}
	years := make([]string, c.Len())
	months := make([]string, c.Len())
	for i := range years {
		if c.Na(i) {
			return nil, zorros.Errorf("column `%v` row %d: date is missing", d.DateColumn, i)
		}
		x, err := tables.ParseDate(c.String(i))
		if err != nil {
			return nil, zorros.Wrapf(err, "column `%v` row %d: %v", d.DateColumn, i, err.Error())
		}
		years[i] = fmt.Sprint(x.Year())
		months[i] = x.Month().String()
	}
	return t.With(tables.Strings(years), d.YearColumn).With(tables.Strings(months), d.MonthColumn), nil
}
