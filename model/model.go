package model

import (
	"encoding/gob"
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/zorros"
)

/*
Regressor is a regression algorithm fitted on a row-major float matrix.
Fitted regressor must be read-only in Predict, so it's safe to predict concurrently.
*/
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

func init() {
	gob.Register(&RandomForest{})
	gob.Register(&Ridge{})
}

/*
Params is a set of hyper-parameters used to create a regressor
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

/*
Int is the same as Get but for integer parameters
*/
func (p Params) Int(name string, dflt int) int {
	return int(p.Get(name, float64(dflt)))
}

/*
New creates unfitted regressor by kind name, random_forest is default.
Zero n_estimators means the default of 100 trees.
*/
func New(kind string, p Params, seed int64) (Regressor, error) {
	switch kind {
	case "ridge":
		return &Ridge{Alpha: p.Get("alpha", 1)}, nil
	case "", "random_forest":
		return NewRandomForest(
			WithNEstimators(fu.Fnzi(p.Int("n_estimators", 0), 100)),
			WithMaxDepth(p.Int("max_depth", 0)),
			WithMinSamplesSplit(p.Int("min_samples_split", 2)),
			WithMinSamplesLeaf(p.Int("min_samples_leaf", 1)),
			WithMaxFeatures(p.Int("max_features", 0)),
			WithRandomState(int64(p.Get("random_state", float64(seed))))), nil
	}
	return nil, zorros.Errorf("unknown regressor `%v`", kind)
}

func checkXy(X [][]float64, y []float64) (int, error) {
	if len(X) == 0 {
		return 0, zorros.Errorf("empty X")
	}
	if len(y) != len(X) {
		return 0, zorros.Errorf("X has %d rows but y has %d values", len(X), len(y))
	}
	return checkX(X, len(X[0]))
}

func checkX(X [][]float64, p int) (int, error) {
	for i, r := range X {
		if len(r) != p {
			return 0, zorros.Errorf("row %d has %d features, expected %d", i, len(r), p)
		}
	}
	return p, nil
}
