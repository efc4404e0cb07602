package model

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

/*
MSE is the mean squared error of predictions
*/
func MSE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	d := floats.Distance(actual, predicted, 2)
	return d * d / float64(len(actual))
}

/*
R2 is the coefficient of determination of predictions,
it's 0 when actual values have no variance
*/
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 || floats.Max(actual) == floats.Min(actual) {
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}
