package pipeline

import (
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/features"
	"go-ml.dev/pkg/bikeshare/model"
	"golang.org/x/xerrors"
)

var (
	_ Stage = (*features.Mapper)(nil)
	_ Stage = (*features.WeekdayImputer)(nil)
	_ Stage = (*features.WeathersitImputer)(nil)
	_ Stage = (*features.OutlierClamp)(nil)
	_ Stage = (*features.WeekdayOneHot)(nil)
	_ Stage = (*features.ColumnDropper)(nil)
	_ Stage = (*features.DateFeatures)(nil)
)

/*
New builds unfitted bike-sharing pipeline from configuration
*/
func New(cfg *config.Config) (*Pipeline, error) {
	m := cfg.Model
	policy, err := features.ParsePolicy(m.StatsPolicy)
	if err != nil {
		return nil, err
	}
	reg, err := model.New(m.Regressor, m.Params, m.RandomState)
	if err != nil {
		return nil, xerrors.Errorf("pipeline: %w", err)
	}
	steps := []Step{
		{"weekday_imputer", &features.WeekdayImputer{DateColumn: m.DateVar, WeekdayColumn: m.WeekdayVar}},
		{"weather_imputer", &features.WeathersitImputer{Column: m.WeathersitVar, Policy: policy}},
	}
	if m.YearVar != "" && m.MonthVar != "" {
		steps = append(steps, Step{"date_features", &features.DateFeatures{
			DateColumn:  m.DateVar,
			YearColumn:  m.YearVar,
			MonthColumn: m.MonthVar,
		}})
	}
	for _, x := range m.Mappings {
		codes := make(map[string]int, len(x.Codes))
		for k, v := range x.Codes {
			codes[k] = v
		}
		steps = append(steps, Step{"map_" + x.Column, &features.Mapper{Column: x.Column, Codes: codes}})
	}
	steps = append(steps,
		Step{"numeric_outlier_handler", &features.OutlierClamp{
			Columns: append([]string(nil), m.NumericalFields...),
			Policy:  policy,
		}},
		Step{"weekday_onehot_encoder", &features.WeekdayOneHot{
			Column:     m.WeekdayVar,
			Categories: append([]string(nil), m.WeekdayOneHot...),
		}},
		Step{"column_dropper", &features.ColumnDropper{Columns: append([]string(nil), m.UnusedFields...)}})
	return NewPipeline(reg, steps...), nil
}
