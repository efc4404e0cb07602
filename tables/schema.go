package tables

import (
	"fmt"
	"strings"
)

/*
SchemaError means a table does not have required columns or a column is unusable
*/
type SchemaError struct {
	Columns []string
	Reason  string // "missing" if empty
}

func (e *SchemaError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	if len(e.Columns) == 1 {
		return fmt.Sprintf("schema: column `%s` %s", e.Columns[0], reason)
	}
	return fmt.Sprintf("schema: columns `%s` %s", strings.Join(e.Columns, "`, `"), reason)
}

/*
Domain is a semantic value domain of column
*/
type Domain int

const (
	Categorical Domain = iota // fixed set of labels
	Continuous                // numbers
	Date                      // calendar dates
)

func (d Domain) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Date:
		return "date"
	}
	return "categorical"
}

/*
Spec describes legal values of a column
*/
type Spec struct {
	Name       string
	Domain     Domain
	Categories []string // legal labels of categorical column
	Nullable   bool     // missing values are legal
	Required   bool     // column must be present
}

/*
Legal returns true if label is one of categories
*/
func (s Spec) Legal(label string) bool {
	for _, c := range s.Categories {
		if c == label {
			return true
		}
	}
	return false
}
