package tables

import (
	"go-ml.dev/pkg/zorros"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

/*
ParseDate parses calendar date in ISO-like formats
*/
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if d, err := time.Parse(l, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, zorros.Errorf("unrecognized date `%v`", s)
}
