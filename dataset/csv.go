/*
Package dataset reads raw bike-sharing records and splits them for training
*/
package dataset

import (
	"encoding/csv"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
	"io"
	"os"
	"strings"
)

/*
ReadCSV reads CSV with header row, every column is a text column, empty cells are missing
*/
func ReadCSV(r io.Reader) (*tables.Table, error) {
	rd := csv.NewReader(r)
	rd.TrimLeadingSpace = true
	header, err := rd.Read()
	if err == io.EOF {
		return nil, zorros.Errorf("csv has no header")
	}
	if err != nil {
		return nil, zorros.Trace(err)
	}
	cells := make([][]string, len(header))
	na := make([][]bool, len(header))
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, zorros.Trace(err)
		}
		for j, s := range rec {
			s = strings.TrimSpace(s)
			cells[j] = append(cells[j], s)
			na[j] = append(na[j], s == "" || s == "NA" || s == "NaN")
		}
	}
	columns := make([]*tables.Column, len(header))
	names := make([]string, len(header))
	for j, n := range header {
		names[j] = strings.TrimSpace(n)
		columns[j] = tables.StringsNA(cells[j], na[j])
	}
	return tables.New(names, columns)
}

/*
LoadCSV reads CSV file
*/
func LoadCSV(path string) (*tables.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to read %v: %v", path, err.Error())
	}
	return t, nil
}
