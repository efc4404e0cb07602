package features

import (
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
)

/*
WeekdayImputer fills missing weekday by the three-letter weekday name of the date
*/
type WeekdayImputer struct {
	DateColumn    string
	WeekdayColumn string
}

func (w *WeekdayImputer) Fit(*tables.Table, []float64) error {
	return nil
}

func (w *WeekdayImputer) Transform(t *tables.Table) (*tables.Table, error) {
	if err := t.Require(w.DateColumn, w.WeekdayColumn); err != nil {
		return nil, err
	}
	dates, days := t.Col(w.DateColumn), t.Col(w.WeekdayColumn)
	if !days.HasNa() {
		return t, nil
	}
	out := make([]string, days.Len())
	for i := range out {
		if !days.Na(i) {
			out[i] = days.String(i)
			continue
		}
		if dates.Na(i) {
			return nil, zorros.Errorf("row %d: neither `%v` nor `%v` is present", i, w.WeekdayColumn, w.DateColumn)
		}
		d, err := tables.ParseDate(dates.String(i))
		if err != nil {
			return nil, zorros.Wrapf(err, "column `%v` row %d: %v", w.DateColumn, i, err.Error())
		}
		out[i] = d.Weekday().String()[:3]
	}
	return t.With(tables.Strings(out), w.WeekdayColumn), nil
}

/*
WeekdayOneHot expands weekday column into one 0/1 column per category of the fixed list
and drops the weekday column. Output columns do not depend on the batch content.
*/
type WeekdayOneHot struct {
	Column     string
	Categories []string
	Prefix     string // Column+"_" if empty
}

func (w *WeekdayOneHot) Fit(*tables.Table, []float64) error {
	return nil
}

/*
Names returns names of indicator columns
*/
func (w *WeekdayOneHot) Names() []string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = w.Column + "_"
	}
	r := make([]string, len(w.Categories))
	for i, c := range w.Categories {
		r[i] = prefix + c
	}
	return r
}

func (w *WeekdayOneHot) Transform(t *tables.Table) (*tables.Table, error) {
	c, err := t.Column(w.Column)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	for i, x := range w.Categories {
		index[x] = i
	}
	ind := make([][]float64, len(w.Categories))
	for j := range ind {
		ind[j] = make([]float64, c.Len())
	}
	for i := 0; i < c.Len(); i++ {
		if c.Na(i) {
			continue
		}
		j, ok := index[c.String(i)]
		if !ok {
			return nil, &UnmappedCategoryError{Column: w.Column, Row: i, Value: c.String(i)}
		}
		ind[j][i] = 1
	}
	r := t.Except(w.Column)
	for j, n := range w.Names() {
		r = r.With(tables.Floats(ind[j]), n)
	}
	return r, nil
}
