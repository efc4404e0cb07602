package config

import (
	"go-ml.dev/pkg/bikeshare/model"
)

/*
Default returns configuration of the bike-sharing demand model
*/
func Default() *Config {
	return &Config{
		App: AppConfig{
			PackageName:      "bikeshare_model",
			TrainingDataFile: "bike-sharing-dataset.csv",
			PipelineSaveFile: "bikeshare__model_output_v",
			Version:          "0.0.1",
			ArtifactStore:    "file",
		},
		Model: ModelConfig{
			Target: "cnt",
			Features: []string{
				"dteday", "season", "hr", "holiday", "weekday", "workingday",
				"weathersit", "temp", "atemp", "hum", "windspeed",
			},
			UnusedFields:  []string{"dteday", "casual", "registered"},
			DateVar:       "dteday",
			WeekdayVar:    "weekday",
			WeathersitVar: "weathersit",
			YearVar:       "yr",
			MonthVar:      "mnth",
			Mappings: []Mapping{
				{Column: "yr", Codes: map[string]int{"2011": 0, "2012": 1}},
				{Column: "mnth", Codes: map[string]int{
					"January": 0, "February": 1, "March": 2, "April": 3, "May": 4, "June": 5,
					"July": 6, "August": 7, "September": 8, "October": 9, "November": 10, "December": 11,
				}},
				{Column: "season", Codes: map[string]int{"spring": 0, "winter": 1, "summer": 2, "fall": 3}},
				{Column: "weathersit", Codes: map[string]int{"Mist": 0, "Clear": 1, "Light Rain": 2, "Heavy Rain": 3}},
				{Column: "holiday", Codes: map[string]int{"Yes": 0, "No": 1}},
				{Column: "workingday", Codes: map[string]int{"No": 0, "Yes": 1}},
				{Column: "hr", Codes: map[string]int{
					"4am": 0, "3am": 1, "5am": 2, "2am": 3, "1am": 4, "12am": 5,
					"6am": 6, "11pm": 7, "10pm": 8, "10am": 9, "9pm": 10, "11am": 11,
					"7am": 12, "9am": 13, "8pm": 14, "2pm": 15, "1pm": 16, "12pm": 17,
					"3pm": 18, "4pm": 19, "7pm": 20, "8am": 21, "6pm": 22, "5pm": 23,
				}},
			},
			NumericalFields: []string{"temp", "atemp", "hum", "windspeed"},
			OptionalFields:  []string{"casual", "registered"},
			WeekdayOneHot:   []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			TestSize:        0.2,
			RandomState:     42,
			StatsPolicy:     "batch",
			Regressor:       "random_forest",
			Params: model.Params{
				"n_estimators": 150,
				"max_depth":    5,
			},
		},
	}
}
