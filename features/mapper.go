package features

import (
	"go-ml.dev/pkg/bikeshare/tables"
)

/*
Mapper replaces category labels of one column by integer codes.
Mapping is closed, missing or unknown label fails the whole batch.
*/
type Mapper struct {
	Column string
	Codes  map[string]int
}

func (m *Mapper) Fit(*tables.Table, []float64) error {
	return nil
}

func (m *Mapper) Transform(t *tables.Table) (*tables.Table, error) {
	c, err := t.Column(m.Column)
	if err != nil {
		return nil, err
	}
	if c.Kind() == tables.Float {
		e := &UnmappedCategoryError{Column: m.Column, Row: -1, Reason: "is numeric, not a category label"}
		if c.Len() > 0 {
			e.Row, e.Value = 0, c.String(0)
		}
		return nil, e
	}
	codes := make([]float64, c.Len())
	for i := range codes {
		if c.Na(i) {
			return nil, &UnmappedCategoryError{Column: m.Column, Row: i, Reason: "is missing"}
		}
		v, ok := m.Codes[c.String(i)]
		if !ok {
			return nil, &UnmappedCategoryError{Column: m.Column, Row: i, Value: c.String(i)}
		}
		codes[i] = float64(v)
	}
	return t.With(tables.Floats(codes), m.Column), nil
}
