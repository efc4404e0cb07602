package validation

import (
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/dataset"
	"go-ml.dev/pkg/bikeshare/tables"
	"gotest.tools/assert"
	"strings"
	"testing"
)

const records = `dteday,season,hr,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,cnt
2012-11-29,fall,6pm,No,,Yes,Clear,16.1,17.5,30,10,300
2012-11-30,fall,7pm,No,Fri,Yes,,15,14,40,12,250
2012-12-01,autumn,7pm,No,Sat,No,Clear,15,14,40,12,100
2012-12-02,winter,7pm,No,Sun,No,Clear,hot,14,40,12,90
not-a-date,winter,7pm,No,Sun,No,Clear,10,14,40,12,90
2012-12-03,winter,7pm,,Mon,Yes,Clear,10,14,40,12,80
`

func gate() Gate {
	return Gate{Specs: config.Default().Schema()}
}

func Test_Validate1(t *testing.T) {
	q, err := dataset.ReadCSV(strings.NewReader(records))
	assert.NilError(t, err)
	clean, errs := gate().Validate(q)
	assert.Assert(t, clean != nil)
	assert.Assert(t, clean.Len() == 2)
	assert.DeepEqual(t, clean.Col("dteday").Strings(), []string{"2012-11-29", "2012-11-30"})
	assert.Assert(t, clean.Col("temp").Kind() == tables.Float)
	assert.Assert(t, clean.Col("temp").Float(0) == 16.1)
	assert.Assert(t, clean.Col("cnt").Kind() == tables.Float)
	assert.Assert(t, clean.Col("weekday").Na(0))
	assert.Assert(t, clean.Col("weathersit").Na(1))

	assert.DeepEqual(t, errs, []ValidationError{
		{Row: 2, Column: "season", Value: "autumn", Reason: "unrecognized category"},
		{Row: 3, Column: "temp", Value: "hot", Reason: "not a number"},
		{Row: 4, Column: "dteday", Value: "not-a-date", Reason: "not a date"},
		{Row: 5, Column: "holiday", Reason: "value is missing"},
	})
}

func Test_Validate2(t *testing.T) {
	q := dataset.Synthetic(20, 1).Except("hum", "windspeed")
	clean, errs := gate().Validate(q)
	assert.Assert(t, clean == nil)
	assert.DeepEqual(t, errs, []ValidationError{
		{Row: -1, Column: "hum", Reason: "required column is missing"},
		{Row: -1, Column: "windspeed", Reason: "required column is missing"},
	})
	assert.Assert(t, errs[0].Error() == "column `hum`: required column is missing")
}

func Test_Validate3(t *testing.T) {
	q := dataset.Synthetic(100, 2).With(tables.Strings(make([]string, 100)), "comment")
	clean, errs := gate().Validate(q)
	assert.Assert(t, len(errs) == 0)
	assert.Assert(t, clean.Len() == 100)
	assert.Assert(t, clean.Has("comment"))
	assert.Assert(t, clean.Has("casual"))
}

func Test_Check1(t *testing.T) {
	q := tables.LuckyNew([]string{"weekday"}, []*tables.Column{tables.Strings([]string{"Mon", "Funday"})})
	g := Gate{Specs: []tables.Spec{{Name: "weekday", Categories: []string{"Mon", "Tue"}}}}
	r := g.Check(q)
	assert.Assert(t, r[0].Ok())
	assert.Assert(t, !r[1].Ok())
	assert.Assert(t, r[1].Errors[0].Error() == `row 1 column `+"`weekday`"+`: unrecognized category ("Funday")`)
}
