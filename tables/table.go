/*
Package tables implements in-memory column tables used by the feature pipeline
*/
package tables

import (
	"go-ml.dev/pkg/zorros"
	"sort"
)

/*
Table is an ordered set of named columns of the same length.
Row identity is positional. Table is never modified in place,
all operations return a new table sharing unchanged columns.
*/
type Table struct {
	names   []string
	columns []*Column
	length  int
}

/*
New creates table from names and columns
*/
func New(names []string, columns []*Column) (*Table, error) {
	if len(names) != len(columns) {
		return nil, zorros.Errorf("%d names for %d columns", len(names), len(columns))
	}
	t := &Table{}
	seen := map[string]bool{}
	for i, n := range names {
		if seen[n] {
			return nil, zorros.Errorf("duplicate column `%v`", n)
		}
		seen[n] = true
		if i == 0 {
			t.length = columns[i].Len()
		} else if columns[i].Len() != t.length {
			return nil, zorros.Errorf("column `%v` has %d rows, expected %d", n, columns[i].Len(), t.length)
		}
	}
	t.names = append(t.names, names...)
	t.columns = append(t.columns, columns...)
	return t, nil
}

/*
LuckyNew creates table and panics on error
*/
func LuckyNew(names []string, columns []*Column) *Table {
	t, err := New(names, columns)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return t
}

/*
FromRows creates table from row-oriented mappings. Columns are ordered by name,
keys absent in a row are missing values.
*/
func FromRows(rows []map[string]interface{}) (*Table, error) {
	seen := map[string]bool{}
	names := []string{}
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	columns := make([]*Column, len(names))
	for j, n := range names {
		cells := make([]interface{}, len(rows))
		for i, r := range rows {
			cells[i] = r[n]
		}
		c, err := safeCells(cells)
		if err != nil {
			return nil, zorros.Wrapf(err, "column `%v`: %v", n, err.Error())
		}
		columns[j] = c
	}
	return New(names, columns)
}

func safeCells(cells []interface{}) (c *Column, err error) {
	for _, x := range cells {
		switch x.(type) {
		case nil, string, float64, float32, int, int64, bool:
		default:
			return nil, zorros.Errorf("unsupported cell value %T", x)
		}
	}
	return cellsColumn(cells), nil
}

func (t *Table) Len() int {
	return t.length
}

func (t *Table) Width() int {
	return len(t.names)
}

/*
Names returns column names in table order
*/
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

func (t *Table) index(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

/*
Has returns true if table has column with the name
*/
func (t *Table) Has(name string) bool {
	return t.index(name) >= 0
}

/*
Column returns column by name or SchemaError if there is no such column
*/
func (t *Table) Column(name string) (*Column, error) {
	if i := t.index(name); i >= 0 {
		return t.columns[i], nil
	}
	return nil, &SchemaError{Columns: []string{name}}
}

/*
Col returns column by name and panics if there is no such column
*/
func (t *Table) Col(name string) *Column {
	c, err := t.Column(name)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return c
}

/*
Require checks all names are table columns
*/
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Columns: missing}
	}
	return nil
}

/*
With returns new table where column name is replaced by c or appended if absent
*/
func (t *Table) With(c *Column, name string) *Table {
	if t.Width() > 0 && c.Len() != t.length {
		panic(zorros.Panic(zorros.Errorf("column `%v` has %d rows, expected %d", name, c.Len(), t.length)))
	}
	r := &Table{names: t.Names(), columns: append([]*Column(nil), t.columns...), length: c.Len()}
	if i := r.index(name); i >= 0 {
		r.columns[i] = c
	} else {
		r.names = append(r.names, name)
		r.columns = append(r.columns, c)
	}
	return r
}

/*
Except returns new table without listed columns, absent names are ignored
*/
func (t *Table) Except(names ...string) *Table {
	drop := map[string]bool{}
	for _, n := range names {
		drop[n] = true
	}
	r := &Table{length: t.length}
	for i, n := range t.names {
		if !drop[n] {
			r.names = append(r.names, n)
			r.columns = append(r.columns, t.columns[i])
		}
	}
	return r
}

/*
Only returns new table with listed columns in listed order
*/
func (t *Table) Only(names ...string) (*Table, error) {
	if err := t.Require(names...); err != nil {
		return nil, err
	}
	r := &Table{length: t.length}
	for _, n := range names {
		r.names = append(r.names, n)
		r.columns = append(r.columns, t.columns[t.index(n)])
	}
	return r, nil
}

/*
Rows returns new table containing rows with listed indices in listed order
*/
func (t *Table) Rows(idx []int) *Table {
	r := &Table{names: t.Names(), columns: make([]*Column, len(t.columns)), length: len(idx)}
	for i, c := range t.columns {
		r.columns[i] = c.pick(idx)
	}
	return r
}

/*
Matrix returns row-major float matrix of listed columns.
Columns must be float columns without missing values.
*/
func (t *Table) Matrix(names []string) ([][]float64, error) {
	if err := t.Require(names...); err != nil {
		return nil, err
	}
	cols := make([]*Column, len(names))
	for j, n := range names {
		c := t.columns[t.index(n)]
		if c.Kind() != Float {
			return nil, &SchemaError{Columns: []string{n}, Reason: "is not numeric"}
		}
		if c.HasNa() {
			return nil, &SchemaError{Columns: []string{n}, Reason: "has missing values"}
		}
		cols[j] = c
	}
	X := make([][]float64, t.length)
	for i := range X {
		X[i] = make([]float64, len(cols))
		for j, c := range cols {
			X[i][j] = c.nums[i]
		}
	}
	return X, nil
}
