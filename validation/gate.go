/*
Package validation checks raw input tables against column specs before they enter the pipeline
*/
package validation

import (
	"fmt"
	"go-ml.dev/pkg/bikeshare/tables"
	"math"
	"strings"
)

/*
ValidationError describes a row failing a column domain check.
Row is -1 for errors concerning the whole table.
*/
type ValidationError struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column `%s`: %s", e.Column, e.Reason)
	}
	if e.Value != "" {
		return fmt.Sprintf("row %d column `%s`: %s (%q)", e.Row, e.Column, e.Reason, e.Value)
	}
	return fmt.Sprintf("row %d column `%s`: %s", e.Row, e.Column, e.Reason)
}

/*
RowResult is the outcome of one row check, the row is clean if there are no errors
*/
type RowResult struct {
	Row    int
	Errors []ValidationError
}

func (r RowResult) Ok() bool {
	return len(r.Errors) == 0
}

/*
Gate validates tables against column specs
*/
type Gate struct {
	Specs []tables.Spec
}

/*
Validate returns table of clean rows and errors of all other rows.
Continuous columns of result are numeric, categorical and date columns are texts.
If required columns are missing the result table is nil.
*/
func (g Gate) Validate(t *tables.Table) (*tables.Table, []ValidationError) {
	var errs []ValidationError
	for _, s := range g.Specs {
		if s.Required && !t.Has(s.Name) {
			errs = append(errs, ValidationError{Row: -1, Column: s.Name, Reason: "required column is missing"})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	t = g.normalize(t)
	clean := []int{}
	for _, r := range g.Check(t) {
		if r.Ok() {
			clean = append(clean, r.Row)
		} else {
			errs = append(errs, r.Errors...)
		}
	}
	return g.numeric(t.Rows(clean)), errs
}

/*
Check validates every row of normalized table
*/
func (g Gate) Check(t *tables.Table) []RowResult {
	results := make([]RowResult, t.Len())
	for i := range results {
		results[i] = g.row(t, i)
	}
	return results
}

func (g Gate) row(t *tables.Table, i int) RowResult {
	r := RowResult{Row: i}
	for _, s := range g.Specs {
		c, err := t.Column(s.Name)
		if err != nil {
			continue
		}
		if c.Na(i) {
			if !s.Nullable {
				r.Errors = append(r.Errors, ValidationError{Row: i, Column: s.Name, Reason: "value is missing"})
			}
			continue
		}
		v := c.String(i)
		switch s.Domain {
		case tables.Categorical:
			if len(s.Categories) > 0 && !s.Legal(v) {
				r.Errors = append(r.Errors, ValidationError{Row: i, Column: s.Name, Value: v, Reason: "unrecognized category"})
			}
		case tables.Continuous:
			if math.IsNaN(c.Float(i)) || math.IsInf(c.Float(i), 0) {
				r.Errors = append(r.Errors, ValidationError{Row: i, Column: s.Name, Value: v, Reason: "not a number"})
			}
		case tables.Date:
			if _, err := tables.ParseDate(v); err != nil {
				r.Errors = append(r.Errors, ValidationError{Row: i, Column: s.Name, Value: v, Reason: "not a date"})
			}
		}
	}
	return r
}

func (g Gate) normalize(t *tables.Table) *tables.Table {
	for _, s := range g.Specs {
		c, err := t.Column(s.Name)
		if err != nil || c.Kind() == tables.Float {
			continue
		}
		na := c.NaMask()
		v := c.Strings()
		for i := range v {
			v[i] = strings.TrimSpace(v[i])
			na[i] = na[i] || v[i] == ""
		}
		t = t.With(tables.StringsNA(v, na), s.Name)
	}
	return t
}

func (g Gate) numeric(t *tables.Table) *tables.Table {
	for _, s := range g.Specs {
		c, err := t.Column(s.Name)
		if err != nil || s.Domain != tables.Continuous || c.Kind() == tables.Float {
			continue
		}
		t = t.With(tables.FloatsNA(c.Floats(), c.NaMask()), s.Name)
	}
	return t
}
