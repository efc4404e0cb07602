package dataset

import (
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
	"math"
	"math/rand"
)

/*
Target separates numeric target column from predictors
*/
func Target(t *tables.Table, name string) (*tables.Table, []float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}
	if c.Kind() != tables.Float || c.HasNa() {
		return nil, nil, &tables.SchemaError{Columns: []string{name}, Reason: "is not a complete numeric target"}
	}
	return t.Except(name), c.Floats(), nil
}

/*
Split is a shuffled train/test split of rows, the same seed gives the same split
*/
type Split struct {
	Train, Test   *tables.Table
	YTrain, YTest []float64
}

/*
TrainTestSplit shuffles rows by seed and puts testSize share of them into test subset
*/
func TrainTestSplit(t *tables.Table, y []float64, testSize float64, seed int64) (*Split, error) {
	if len(y) != t.Len() {
		return nil, zorros.Errorf("table has %d rows but target has %d values", t.Len(), len(y))
	}
	n := t.Len()
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest < 1 || nTest >= n {
		return nil, zorros.Errorf("can't split %d rows with test size %v", n, testSize)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	pick := func(idx []int) []float64 {
		r := make([]float64, len(idx))
		for i, j := range idx {
			r[i] = y[j]
		}
		return r
	}
	test, train := perm[:nTest], perm[nTest:]
	return &Split{
		Train:  t.Rows(train),
		Test:   t.Rows(test),
		YTrain: pick(train),
		YTest:  pick(test),
	}, nil
}
