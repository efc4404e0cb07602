package model

import (
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/zorros"
	"math/rand"
	"runtime"
	"sort"
	"sync"
)

/*
RandomForest is a bagging ensemble of CART regression trees.
Every tree has own random source seeded by RandomState and tree index,
so fitting is deterministic regardless of goroutines scheduling.
*/
type RandomForest struct {
	NEstimators     int
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => all features are candidates of every split
	Bootstrap       bool
	RandomState     int64

	NFeatures int
	Trees     []*Node
}

/*
Node is a regression tree node, x[Feature] <= Threshold goes to the Left
*/
type Node struct {
	Leaf      bool
	Value     float64
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
}

type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption {
	return func(f *RandomForest) { f.NEstimators = n }
}

func WithMaxDepth(d int) ForestOption {
	return func(f *RandomForest) { f.MaxDepth = d }
}

func WithMinSamplesSplit(n int) ForestOption {
	return func(f *RandomForest) { f.MinSamplesSplit = n }
}

func WithMinSamplesLeaf(n int) ForestOption {
	return func(f *RandomForest) { f.MinSamplesLeaf = n }
}

func WithMaxFeatures(k int) ForestOption {
	return func(f *RandomForest) { f.MaxFeatures = k }
}

func WithBootstrap(b bool) ForestOption {
	return func(f *RandomForest) { f.Bootstrap = b }
}

func WithRandomState(seed int64) ForestOption {
	return func(f *RandomForest) { f.RandomState = seed }
}

/*
NewRandomForest creates forest with defaults of 100 bootstrapped unlimited trees
*/
func NewRandomForest(opts ...ForestOption) *RandomForest {
	f := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *RandomForest) Fit(X [][]float64, y []float64) error {
	p, err := checkXy(X, y)
	if err != nil {
		return zorros.Wrapf(err, "randomforest: %v", err.Error())
	}
	n := len(X)
	trees := make([]*Node, fu.Maxi(f.NEstimators, 1))
	sem := make(chan struct{}, runtime.NumCPU())
	wg := sync.WaitGroup{}
	for k := range trees {
		wg.Add(1)
		sem <- struct{}{}
		go func(k int) {
			defer wg.Done()
			defer func() { <-sem }()
			rnd := rand.New(rand.NewSource(f.RandomState + int64(k)))
			idx := make([]int, n)
			for i := range idx {
				if f.Bootstrap {
					idx[i] = rnd.Intn(n)
				} else {
					idx[i] = i
				}
			}
			trees[k] = f.grow(X, y, idx, 0, p, rnd)
		}(k)
	}
	wg.Wait()
	f.NFeatures = p
	f.Trees = trees
	return nil
}

func (f *RandomForest) Predict(X [][]float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, zorros.Errorf("randomforest: not fitted")
	}
	if _, err := checkX(X, f.NFeatures); err != nil {
		return nil, zorros.Wrapf(err, "randomforest: %v", err.Error())
	}
	out := make([]float64, len(X))
	for i, x := range X {
		s := 0.0
		for _, t := range f.Trees {
			s += t.predict(x)
		}
		out[i] = s / float64(len(f.Trees))
	}
	return out, nil
}

func (n *Node) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

type split struct {
	feature   int
	threshold float64
	sse       float64
	ok        bool
}

func (f *RandomForest) grow(X [][]float64, y []float64, idx []int, depth, p int, rnd *rand.Rand) *Node {
	sum, sq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	n := float64(len(idx))
	leaf := &Node{Leaf: true, Value: sum / n}
	parent := sq - sum*sum/n
	if len(idx) < fu.Maxi(f.MinSamplesSplit, 2) || (f.MaxDepth > 0 && depth >= f.MaxDepth) || parent <= 1e-12 {
		return leaf
	}

	candidates := rnd.Perm(p)
	if f.MaxFeatures > 0 {
		candidates = candidates[:fu.Mini(f.MaxFeatures, p)]
	}
	sort.Ints(candidates)

	best := split{sse: parent}
	for _, j := range candidates {
		if s := f.bestSplit(X, y, idx, j); s.ok && s.sse < best.sse-1e-12 {
			best = s
		}
	}
	if !best.ok {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if X[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &Node{
		Feature:   best.feature,
		Threshold: best.threshold,
		Value:     leaf.Value,
		Left:      f.grow(X, y, left, depth+1, p, rnd),
		Right:     f.grow(X, y, right, depth+1, p, rnd),
	}
}

func (f *RandomForest) bestSplit(X [][]float64, y []float64, idx []int, j int) split {
	order := append([]int(nil), idx...)
	sort.SliceStable(order, func(a, b int) bool { return X[order[a]][j] < X[order[b]][j] })

	total, totalSq := 0.0, 0.0
	for _, i := range order {
		total += y[i]
		totalSq += y[i] * y[i]
	}
	minLeaf := fu.Maxi(f.MinSamplesLeaf, 1)
	n := len(order)
	s := split{feature: j}
	sum, sq := 0.0, 0.0
	for k := 0; k < n-1; k++ {
		i := order[k]
		sum += y[i]
		sq += y[i] * y[i]
		nl := k + 1
		nr := n - nl
		if nl < minLeaf || nr < minLeaf {
			continue
		}
		a, b := X[i][j], X[order[k+1]][j]
		if a == b {
			continue
		}
		rs, rq := total-sum, totalSq-sq
		sse := (sq - sum*sum/float64(nl)) + (rq - rs*rs/float64(nr))
		if !s.ok || sse < s.sse {
			s.sse = sse
			s.threshold = (a + b) / 2
			s.ok = true
		}
	}
	return s
}
