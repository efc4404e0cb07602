package features

import (
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
	"math"
)

/*
Fence is a closed range of accepted values
*/
type Fence struct {
	Lower, Upper float64
}

/*
IQRFence returns Tukey's fence [Q1-1.5*IQR, Q3+1.5*IQR] of non-NaN values
*/
func IQRFence(v []float64) Fence {
	q1 := fu.Quantile(v, .25)
	q3 := fu.Quantile(v, .75)
	iqr := q3 - q1
	return Fence{q1 - 1.5*iqr, q3 + 1.5*iqr}
}

/*
OutlierClamp sets values below the lower fence to the lower fence
and values above the upper fence to the upper fence.
Columns are processed independently in the listed order.
*/
type OutlierClamp struct {
	Columns []string
	Policy  Policy
	Fences  map[string]Fence // frozen fences
}

func (o *OutlierClamp) Fit(t *tables.Table, _ []float64) error {
	o.Fences = nil
	if o.Policy != FrozenStatistics {
		return nil
	}
	if err := t.Require(o.Columns...); err != nil {
		return err
	}
	o.Fences = map[string]Fence{}
	for _, n := range o.Columns {
		o.Fences[n] = IQRFence(t.Col(n).Floats())
	}
	return nil
}

func (o *OutlierClamp) Transform(t *tables.Table) (*tables.Table, error) {
	if err := t.Require(o.Columns...); err != nil {
		return nil, err
	}
	for _, n := range o.Columns {
		c := t.Col(n)
		v := c.Floats()
		fence, ok := o.Fences[n]
		if o.Policy == BatchStatistics {
			fence = IQRFence(v)
		} else if !ok {
			return nil, zorros.Errorf("column `%v` has no fitted fence", n)
		}
		for i, x := range v {
			if !math.IsNaN(x) {
				v[i] = fu.Clamp(x, fence.Lower, fence.Upper)
			}
		}
		t = t.With(tables.Floats(v), n)
	}
	return t, nil
}
