/*
Package features implements column transforms of bike-sharing feature pipeline.

Every transform has Fit(table, target) and Transform(table) methods.
Transforms never modify input table and never change count of rows.
*/
package features

import (
	"encoding/gob"
	"fmt"
	"go-ml.dev/pkg/zorros"
	"sort"
)

func init() {
	gob.Register(&Mapper{})
	gob.Register(&WeekdayImputer{})
	gob.Register(&WeathersitImputer{})
	gob.Register(&OutlierClamp{})
	gob.Register(&WeekdayOneHot{})
	gob.Register(&ColumnDropper{})
	gob.Register(&DateFeatures{})
}

/*
Policy selects where statistical transforms take their statistics from
*/
type Policy int

const (
	// BatchStatistics recomputes mode and quartiles from every transformed batch
	BatchStatistics Policy = iota
	// FrozenStatistics computes mode and quartiles in Fit and reuses them in Transform
	FrozenStatistics
)

func (p Policy) String() string {
	if p == FrozenStatistics {
		return "frozen"
	}
	return "batch"
}

/*
ParsePolicy converts configuration value to Policy, empty string is batch
*/
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "batch":
		return BatchStatistics, nil
	case "frozen":
		return FrozenStatistics, nil
	}
	return BatchStatistics, zorros.Errorf("unknown statistics policy `%v`", s)
}

/*
UnmappedCategoryError means a value is not a label of closed category set
*/
type UnmappedCategoryError struct {
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *UnmappedCategoryError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is not a known category"
	}
	return fmt.Sprintf("column `%s` row %d: value %q %s", e.Column, e.Row, e.Value, reason)
}

/*
EmptyColumnError means there are no observed values to derive a statistic from
*/
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column `%s` has no observed values", e.Column)
}

/*
Mode returns the most frequent label, ties are resolved to lexicographically first label
*/
func Mode(labels []string) (string, bool) {
	counts := map[string]int{}
	for _, s := range labels {
		counts[s]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	mode, n := "", 0
	for _, k := range keys {
		if counts[k] > n {
			mode, n = k, counts[k]
		}
	}
	return mode, n > 0
}
