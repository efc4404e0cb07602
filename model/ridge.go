package model

import (
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Ridge is L2 regularized linear regression solved by normal equations.
Intercept is not regularized.
*/
type Ridge struct {
	Alpha     float64
	Coef      []float64
	Intercept float64
}

func (r *Ridge) Fit(X [][]float64, y []float64) error {
	p, err := checkXy(X, y)
	if err != nil {
		return zorros.Wrapf(err, "ridge: %v", err.Error())
	}
	n := len(X)
	xm := make([]float64, p)
	ym := 0.0
	for i, row := range X {
		for j, v := range row {
			xm[j] += v
		}
		ym += y[i]
	}
	for j := range xm {
		xm[j] /= float64(n)
	}
	ym /= float64(n)

	xc := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i, row := range X {
		for j, v := range row {
			xc.Set(i, j, v-xm[j])
		}
		yc.SetVec(i, y[i]-ym)
	}

	var a mat.Dense
	a.Mul(xc.T(), xc)
	for j := 0; j < p; j++ {
		a.Set(j, j, a.At(j, j)+r.Alpha)
	}
	var b mat.VecDense
	b.MulVec(xc.T(), yc)
	var w mat.VecDense
	if err := w.SolveVec(&a, &b); err != nil {
		return zorros.Wrapf(err, "ridge: failed to solve normal equations: %v", err.Error())
	}

	r.Coef = make([]float64, p)
	r.Intercept = ym
	for j := range r.Coef {
		r.Coef[j] = w.AtVec(j)
		r.Intercept -= r.Coef[j] * xm[j]
	}
	return nil
}

func (r *Ridge) Predict(X [][]float64) ([]float64, error) {
	if r.Coef == nil {
		return nil, zorros.Errorf("ridge: not fitted")
	}
	if _, err := checkX(X, len(r.Coef)); err != nil {
		return nil, zorros.Wrapf(err, "ridge: %v", err.Error())
	}
	out := make([]float64, len(X))
	for i, row := range X {
		v := r.Intercept
		for j, x := range row {
			v += r.Coef[j] * x
		}
		out[i] = v
	}
	return out, nil
}
