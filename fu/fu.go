package fu

import (
	"math"
	"sort"
)

/*
Fnzi returns the first non-zero value or 0
*/
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

/*
Fnzs returns the first non-empty string or empty string
*/
func Fnzs(a ...string) string {
	for _, x := range a {
		if x != "" {
			return x
		}
	}
	return ""
}

func Maxi(a int, b ...int) int {
	for _, x := range b {
		if x > a {
			a = x
		}
	}
	return a
}

func Mini(a int, b ...int) int {
	for _, x := range b {
		if x < a {
			a = x
		}
	}
	return a
}

/*
Quantile returns q-quantile (0 <= q <= 1) of non-NaN values
linearly interpolated between closest ranks, NaN if there are no values
*/
func Quantile(a []float64, q float64) float64 {
	v := make([]float64, 0, len(a))
	for _, x := range a {
		if !math.IsNaN(x) {
			v = append(v, x)
		}
	}
	if len(v) == 0 {
		return math.NaN()
	}
	sort.Float64s(v)
	rank := q * float64(len(v)-1)
	lo := int(math.Floor(rank))
	if lo >= len(v)-1 {
		return v[len(v)-1]
	}
	if lo < 0 {
		return v[0]
	}
	w := rank - float64(lo)
	return v[lo]*(1-w) + v[lo+1]*w
}

/*
Clamp limits x to [lo,hi]
*/
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
