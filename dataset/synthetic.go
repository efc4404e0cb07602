package dataset

import (
	"fmt"
	"go-ml.dev/pkg/bikeshare/tables"
	"math"
	"math/rand"
	"time"
)

/*
Hours are hour labels of raw records
*/
var Hours = func() []string {
	r := make([]string, 24)
	for h := range r {
		switch {
		case h == 0:
			r[h] = "12am"
		case h < 12:
			r[h] = fmt.Sprintf("%dam", h)
		case h == 12:
			r[h] = "12pm"
		default:
			r[h] = fmt.Sprintf("%dpm", h-12)
		}
	}
	return r
}()

func season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	}
	return "fall"
}

/*
Synthetic generates n raw records shaped like hourly bike-sharing data of 2011-2012.
Some weekday and weathersit cells are missing and some windspeed values are outliers.
*/
func Synthetic(n int, seed int64) *tables.Table {
	rnd := rand.New(rand.NewSource(seed))
	start := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	weathers := []string{"Clear", "Clear", "Clear", "Mist", "Mist", "Light Rain"}

	dteday, seasons, hr, holiday, weekday, workingday, weathersit :=
		make([]string, n), make([]string, n), make([]string, n), make([]string, n),
		make([]string, n), make([]string, n), make([]string, n)
	weekdayNa, weatherNa := make([]bool, n), make([]bool, n)
	temp, atemp, hum, windspeed, casual, registered, cnt :=
		make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n),
		make([]float64, n), make([]float64, n), make([]float64, n)

	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, rnd.Intn(730))
		h := rnd.Intn(24)
		dteday[i] = d.Format("2006-01-02")
		seasons[i] = season(d.Month())
		hr[i] = Hours[h]
		weekday[i] = d.Weekday().String()[:3]
		weekdayNa[i] = rnd.Float64() < .1
		off := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		holiday[i] = "No"
		if !off && rnd.Float64() < .03 {
			holiday[i], off = "Yes", true
		}
		workingday[i] = "Yes"
		if off {
			workingday[i] = "No"
		}
		weathersit[i] = weathers[rnd.Intn(len(weathers))]
		weatherNa[i] = rnd.Float64() < .05

		yday := float64(d.YearDay())
		temp[i] = 15 - 12*math.Cos(2*math.Pi*yday/365) + rnd.NormFloat64()*3
		atemp[i] = temp[i] - 2 + rnd.NormFloat64()
		hum[i] = 40 + rnd.Float64()*50
		windspeed[i] = rnd.Float64() * 25
		if rnd.Float64() < .02 {
			windspeed[i] = 60 + rnd.Float64()*20
		}

		peak := math.Exp(-math.Pow(float64(h)-8, 2)/4) + math.Exp(-math.Pow(float64(h)-17.5, 2)/5)
		if off {
			peak = math.Exp(-math.Pow(float64(h)-14, 2) / 12)
		}
		v := 20 + 400*peak + 6*temp[i] - 0.5*hum[i]
		if weathersit[i] == "Light Rain" {
			v *= .6
		}
		if d.Year() == 2012 {
			v *= 1.4
		}
		v = math.Max(1, math.Round(v+rnd.NormFloat64()*15))
		casual[i] = math.Round(v * .2)
		registered[i] = v - casual[i]
		cnt[i] = v
	}

	return tables.LuckyNew(
		[]string{"dteday", "season", "hr", "holiday", "weekday", "workingday", "weathersit",
			"temp", "atemp", "hum", "windspeed", "casual", "registered", "cnt"},
		[]*tables.Column{
			tables.Strings(dteday),
			tables.Strings(seasons),
			tables.Strings(hr),
			tables.Strings(holiday),
			tables.StringsNA(weekday, weekdayNa),
			tables.Strings(workingday),
			tables.StringsNA(weathersit, weatherNa),
			tables.Floats(temp),
			tables.Floats(atemp),
			tables.Floats(hum),
			tables.Floats(windspeed),
			tables.Floats(casual),
			tables.Floats(registered),
			tables.Floats(cnt),
		})
}
