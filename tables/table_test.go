package tables

import (
	"gotest.tools/assert"
	"math"
	"testing"
)

func Test_Table1(t *testing.T) {
	q := LuckyNew(
		[]string{"a", "b"},
		[]*Column{Col([]int{1, 2, 3}), Col([]string{"x", "y", "z"})})
	assert.Assert(t, q.Len() == 3)
	assert.Assert(t, q.Width() == 2)
	assert.Assert(t, q.Col("a").Kind() == Float)
	assert.Assert(t, q.Col("b").Kind() == String)
	assert.Assert(t, q.Col("a").Float(2) == 3)
	assert.Assert(t, q.Col("b").String(1) == "y")

	r := q.With(Col([]float64{7, 8, 9}), "c").Except("a", "nope")
	assert.DeepEqual(t, r.Names(), []string{"b", "c"})
	assert.DeepEqual(t, q.Names(), []string{"a", "b"})

	r = q.With(Col([]string{"p", "q", "r"}), "a")
	assert.DeepEqual(t, r.Names(), []string{"a", "b"})
	assert.Assert(t, r.Col("a").String(0) == "p")
	assert.Assert(t, q.Col("a").Float(0) == 1)
}

func Test_New1(t *testing.T) {
	_, err := New([]string{"a", "b"}, []*Column{Col([]int{1}), Col([]int{1, 2})})
	assert.ErrorContains(t, err, "expected 1")
	_, err = New([]string{"a", "a"}, []*Column{Col([]int{1}), Col([]int{1})})
	assert.ErrorContains(t, err, "duplicate")
}

func Test_Missing1(t *testing.T) {
	c := Col([]interface{}{"Mon", nil, "Wed"})
	assert.Assert(t, c.Kind() == String)
	assert.Assert(t, c.Na(1))
	assert.Assert(t, c.HasNa())
	assert.Assert(t, c.String(1) == "")

	f := Col([]interface{}{1.5, nil, 3})
	assert.Assert(t, f.Kind() == Float)
	assert.Assert(t, f.Na(1))
	assert.Assert(t, math.IsNaN(f.Float(1)))

	g := Floats([]float64{1, math.NaN()})
	assert.Assert(t, g.Na(1))
}

func Test_Require1(t *testing.T) {
	q := LuckyNew([]string{"a"}, []*Column{Col([]int{1})})
	err := q.Require("a", "b", "c")
	se, ok := err.(*SchemaError)
	assert.Assert(t, ok)
	assert.DeepEqual(t, se.Columns, []string{"b", "c"})
	_, err = q.Column("x")
	assert.ErrorContains(t, err, "`x` missing")
}

func Test_Rows1(t *testing.T) {
	x := LuckyNew(
		[]string{"Feature1", "Label"},
		[]*Column{Col([]float64{.1, .2, .3, .4, .5}), Col([]string{"a", "b", "c", "d", "e"})})
	q := x.Rows([]int{4, 0, 2})
	assert.Assert(t, q.Len() == 3)
	assert.Assert(t, q.Col("Feature1").Float(0) == .5)
	assert.Assert(t, q.Col("Label").String(2) == "c")
	for i := 0; i < x.Len(); i += 2 {
		b := x.Rows([]int{i})
		assert.Assert(t, b.Col("Feature1").Float(0) == x.Col("Feature1").Float(i))
	}
}

func Test_Matrix1(t *testing.T) {
	q := LuckyNew(
		[]string{"a", "b", "s"},
		[]*Column{Col([]int{1, 2}), Col([]float64{3, 4}), Col([]string{"x", "y"})})
	X, err := q.Matrix([]string{"b", "a"})
	assert.NilError(t, err)
	assert.DeepEqual(t, X, [][]float64{{3, 1}, {4, 2}})
	_, err = q.Matrix([]string{"s"})
	assert.ErrorContains(t, err, "not numeric")
	q = q.With(Col([]interface{}{1.0, nil}), "n")
	_, err = q.Matrix([]string{"n"})
	assert.ErrorContains(t, err, "missing values")
}

func Test_FromRows1(t *testing.T) {
	q, err := FromRows([]map[string]interface{}{
		{"weekday": "Thu", "temp": 4.22, "hum": 65},
		{"weekday": nil, "temp": 1.5},
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Names(), []string{"hum", "temp", "weekday"})
	assert.Assert(t, q.Col("hum").Na(1))
	assert.Assert(t, q.Col("hum").Float(0) == 65)
	assert.Assert(t, q.Col("weekday").Na(1))
	_, err = FromRows([]map[string]interface{}{{"x": []int{1}}})
	assert.ErrorContains(t, err, "unsupported")
}

func Test_ParseDate1(t *testing.T) {
	d, err := ParseDate("2012-11-29")
	assert.NilError(t, err)
	assert.Assert(t, d.Weekday().String() == "Thursday")
	_, err = ParseDate("29.11.2012")
	assert.ErrorContains(t, err, "unrecognized date")
}
