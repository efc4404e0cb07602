package driver

import (
	"go-ml.dev/pkg/bikeshare/artifact"
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/bikeshare/pipeline"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/bikeshare/validation"
	"go-ml.dev/pkg/zorros"
)

/*
Result is an outcome of prediction request.
Predictions are nil if there are any validation errors.
*/
type Result struct {
	Predictions []float64                    `json:"predictions"`
	Version     string                       `json:"version"`
	Errors      []validation.ValidationError `json:"errors"`
}

/*
Predictor scores raw records by a fitted pipeline. It's safe for concurrent use.
*/
type Predictor struct {
	pipe     *pipeline.Pipeline
	version  string
	gate     validation.Gate
	features []string
}

// featureSchema is the input schema without the target column
func featureSchema(cfg *config.Config) []tables.Spec {
	specs := []tables.Spec{}
	for _, s := range cfg.Schema() {
		if s.Name != cfg.Model.Target {
			specs = append(specs, s)
		}
	}
	return specs
}

/*
NewPredictor creates predictor of the fitted pipeline
*/
func NewPredictor(p *pipeline.Pipeline, cfg *config.Config, version string) *Predictor {
	return &Predictor{
		pipe:     p,
		version:  version,
		gate:     validation.Gate{Specs: featureSchema(cfg)},
		features: append([]string(nil), cfg.Model.Features...),
	}
}

/*
Load restores the version pipeline, Config.App.Version is used if version is empty
*/
func Load(m *artifact.Manager, cfg *config.Config, version string) (*Predictor, error) {
	version = fu.Fnzs(version, cfg.App.Version)
	p, err := m.LoadVersion(version)
	if err != nil {
		return nil, err
	}
	return NewPredictor(p, cfg, version), nil
}

func (p *Predictor) Version() string {
	return p.version
}

/*
Predict validates table and predicts all its rows, columns other than features are ignored.
Validation errors are returned in the result, structural failures as error.
*/
func (p *Predictor) Predict(t *tables.Table) (*Result, error) {
	r := &Result{Version: p.version, Errors: []validation.ValidationError{}}
	clean, errs := p.gate.Validate(t)
	if len(errs) > 0 {
		r.Errors = errs
		return r, nil
	}
	clean, err := clean.Only(p.features...)
	if err != nil {
		return nil, err
	}
	y, err := p.pipe.Predict(clean)
	if err != nil {
		return nil, err
	}
	r.Predictions = y
	return r, nil
}

/*
PredictRows is Predict for row-oriented records
*/
func (p *Predictor) PredictRows(rows []map[string]interface{}) (*Result, error) {
	t, err := tables.FromRows(rows)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return p.Predict(t)
}
