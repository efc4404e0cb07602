package tables

import (
	"go-ml.dev/pkg/zorros"
	"math"
	"strconv"
)

/*
Kind is a type of column cells
*/
type Kind int

const (
	String Kind = iota // labels, dates and other text
	Float              // numbers and category codes
)

func (k Kind) String() string {
	if k == Float {
		return "float"
	}
	return "string"
}

/*
Column is an immutable sequence of typed cells. Any cell can be missing (NA).
*/
type Column struct {
	kind Kind
	strs []string
	nums []float64
	na   []bool
}

/*
Strings creates string column without missing values
*/
func Strings(v []string) *Column {
	return StringsNA(v, nil)
}

/*
StringsNA creates string column, na marks missing cells and can be nil
*/
func StringsNA(v []string, na []bool) *Column {
	c := &Column{kind: String, strs: append([]string(nil), v...), na: make([]bool, len(v))}
	copy(c.na, na)
	return c
}

/*
Floats creates float column, NaN values are missing
*/
func Floats(v []float64) *Column {
	na := make([]bool, len(v))
	for i, x := range v {
		na[i] = math.IsNaN(x)
	}
	return FloatsNA(v, na)
}

/*
FloatsNA creates float column, na marks missing cells and can be nil
*/
func FloatsNA(v []float64, na []bool) *Column {
	c := &Column{kind: Float, nums: append([]float64(nil), v...), na: make([]bool, len(v))}
	copy(c.na, na)
	for i := range c.nums {
		if c.na[i] {
			c.nums[i] = math.NaN()
		}
	}
	return c
}

/*
Col creates column from []string, []float64, []int or []interface{}.
For []interface{} nil is missing value and the column is string if any value is string.
*/
func Col(a interface{}) *Column {
	switch v := a.(type) {
	case []string:
		return Strings(v)
	case []float64:
		return Floats(v)
	case []int:
		f := make([]float64, len(v))
		for i, x := range v {
			f[i] = float64(x)
		}
		return Floats(f)
	case []interface{}:
		return cellsColumn(v)
	}
	panic(zorros.Panic(zorros.Errorf("unsupported column source %T", a)))
}

func cellsColumn(v []interface{}) *Column {
	na := make([]bool, len(v))
	text := false
	for i, x := range v {
		switch q := x.(type) {
		case nil:
			na[i] = true
		case string:
			text = true
		case float64:
			na[i] = math.IsNaN(q)
		}
	}
	if text {
		s := make([]string, len(v))
		for i, x := range v {
			if !na[i] {
				s[i] = format(x)
			}
		}
		return StringsNA(s, na)
	}
	f := make([]float64, len(v))
	for i, x := range v {
		if !na[i] {
			f[i] = number(x)
		}
	}
	return FloatsNA(f, na)
}

func format(x interface{}) string {
	switch q := x.(type) {
	case string:
		return q
	case float64:
		return strconv.FormatFloat(q, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(q), 'g', -1, 32)
	case int:
		return strconv.Itoa(q)
	case int64:
		return strconv.FormatInt(q, 10)
	case bool:
		return strconv.FormatBool(q)
	}
	panic(zorros.Panic(zorros.Errorf("unsupported cell value %T", x)))
}

func number(x interface{}) float64 {
	switch q := x.(type) {
	case float64:
		return q
	case float32:
		return float64(q)
	case int:
		return float64(q)
	case int64:
		return float64(q)
	case bool:
		if q {
			return 1
		}
		return 0
	}
	panic(zorros.Panic(zorros.Errorf("unsupported cell value %T", x)))
}

func (c *Column) Kind() Kind {
	return c.kind
}

func (c *Column) Len() int {
	return len(c.na)
}

/*
Na returns true if i-th cell is missing
*/
func (c *Column) Na(i int) bool {
	return c.na[i]
}

/*
HasNa returns true if any cell is missing
*/
func (c *Column) HasNa() bool {
	for _, x := range c.na {
		if x {
			return true
		}
	}
	return false
}

/*
String returns i-th cell as a text, float cells are formatted, missing cells are empty
*/
func (c *Column) String(i int) string {
	if c.na[i] {
		return ""
	}
	if c.kind == Float {
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	}
	return c.strs[i]
}

/*
Float returns i-th cell as a number, missing or unparsable cells are NaN
*/
func (c *Column) Float(i int) float64 {
	if c.na[i] {
		return math.NaN()
	}
	if c.kind == String {
		v, err := strconv.ParseFloat(c.strs[i], 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
	return c.nums[i]
}

/*
Strings returns copy of cells as texts
*/
func (c *Column) Strings() []string {
	r := make([]string, c.Len())
	for i := range r {
		r[i] = c.String(i)
	}
	return r
}

/*
Floats returns copy of cells as numbers
*/
func (c *Column) Floats() []float64 {
	r := make([]float64, c.Len())
	for i := range r {
		r[i] = c.Float(i)
	}
	return r
}

/*
NaMask returns copy of missing cells mask
*/
func (c *Column) NaMask() []bool {
	return append([]bool(nil), c.na...)
}

func (c *Column) pick(idx []int) *Column {
	r := &Column{kind: c.kind, na: make([]bool, len(idx))}
	if c.kind == Float {
		r.nums = make([]float64, len(idx))
	} else {
		r.strs = make([]string, len(idx))
	}
	for j, i := range idx {
		r.na[j] = c.na[i]
		if c.kind == Float {
			r.nums[j] = c.nums[i]
		} else {
			r.strs[j] = c.strs[i]
		}
	}
	return r
}
