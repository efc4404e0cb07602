package fu

import (
	"gotest.tools/assert"
	"math"
	"path/filepath"
	"testing"
)

func Test_Quantile1(t *testing.T) {
	a := []float64{4, math.NaN(), 1, 3, 2}
	assert.Assert(t, Quantile(a, 0) == 1)
	assert.Assert(t, Quantile(a, 1) == 4)
	assert.Assert(t, Quantile(a, .5) == 2.5)
	assert.Assert(t, Quantile(a, .25) == 1.75)
	assert.Assert(t, Quantile([]float64{7}, .75) == 7)
	assert.Assert(t, math.IsNaN(Quantile([]float64{math.NaN()}, .5)))
	assert.Assert(t, a[0] == 4)
}

func Test_Fu1(t *testing.T) {
	assert.Assert(t, Fnzs("", "a", "b") == "a")
	assert.Assert(t, Fnzi(0, 0, 3) == 3)
	assert.Assert(t, Maxi(1, 5, 2) == 5)
	assert.Assert(t, Mini(4, 5, 2) == 2)
	assert.Assert(t, Clamp(10, 0, 5) == 5 && Clamp(-1, 0, 5) == 0 && Clamp(3, 0, 5) == 3)
	assert.Assert(t, ArtifactPath("/var/models") == "/var/models")
	assert.Assert(t, filepath.IsAbs(ArtifactPath("models")))
}
