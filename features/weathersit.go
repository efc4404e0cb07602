package features

import (
	"go-ml.dev/pkg/bikeshare/tables"
)

/*
WeathersitImputer fills missing weather condition by the most frequent observed category.
With BatchStatistics the mode is taken from the transformed batch,
with FrozenStatistics it's taken from the table passed to Fit.
*/
type WeathersitImputer struct {
	Column string
	Policy Policy
	Mode   string // frozen mode
}

func observedMode(t *tables.Table, column string) (string, error) {
	c, err := t.Column(column)
	if err != nil {
		return "", err
	}
	labels := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if !c.Na(i) {
			labels = append(labels, c.String(i))
		}
	}
	mode, ok := Mode(labels)
	if !ok {
		return "", &EmptyColumnError{Column: column}
	}
	return mode, nil
}

func (w *WeathersitImputer) Fit(t *tables.Table, _ []float64) (err error) {
	w.Mode = ""
	if w.Policy == FrozenStatistics {
		w.Mode, err = observedMode(t, w.Column)
	}
	return
}

func (w *WeathersitImputer) Transform(t *tables.Table) (*tables.Table, error) {
	c, err := t.Column(w.Column)
	if err != nil {
		return nil, err
	}
	if !c.HasNa() {
		return t, nil
	}
	mode := w.Mode
	if w.Policy == BatchStatistics {
		if mode, err = observedMode(t, w.Column); err != nil {
			return nil, err
		}
	} else if mode == "" {
		return nil, &EmptyColumnError{Column: w.Column}
	}
	out := make([]string, c.Len())
	for i := range out {
		if c.Na(i) {
			out[i] = mode
		} else {
			out[i] = c.String(i)
		}
	}
	return t.With(tables.Strings(out), w.Column), nil
}
