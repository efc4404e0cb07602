/*
Package driver implements training and prediction workflows of bike-sharing model
*/
package driver

import (
	"bytes"
	"fmt"
	"github.com/google/uuid"
	"go-ml.dev/pkg/bikeshare/artifact"
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/dataset"
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/bikeshare/model"
	"go-ml.dev/pkg/bikeshare/pipeline"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/bikeshare/validation"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"io"
)

/*
Training fits the pipeline on a raw dataset, evaluates it on held-out rows
and persists it as the version artifact
*/
type Training struct {
	Config    *config.Config
	Source    *tables.Table     // raw dataset including target column
	Manager   *artifact.Manager // artifacts storage
	Version   string            // Config.App.Version if empty
	ModelFile iokit.Output      // optional file to copy the artifact to
	KeepStale bool              // do not delete artifacts of other versions
	Verbose   func(string)
}

/*
Report is a training report
*/
type Report struct {
	RunID     string
	Version   string
	Key       string   // artifact key
	MSE, R2   float64  // held-out metrics
	TrainRows int      // rows the pipeline is fitted on
	TestRows  int      // held-out rows
	Rejected  int      // rows rejected by validation
	Deleted   []string // stale artifacts
}

func (t Training) verbose(s string) {
	if t.Verbose != nil {
		t.Verbose(s)
	}
}

func rejectedRows(errs []validation.ValidationError) int {
	rows := map[int]bool{}
	for _, e := range errs {
		rows[e.Row] = true
	}
	return len(rows)
}

func missingColumns(errs []validation.ValidationError) error {
	e := &tables.SchemaError{}
	for _, x := range errs {
		e.Columns = append(e.Columns, x.Column)
	}
	return e
}

/*
Run executes training
*/
func (t Training) Run() (*Report, error) {
	cfg := t.Config
	report := &Report{RunID: uuid.New().String(), Version: fu.Fnzs(t.Version, cfg.App.Version)}

	gate := validation.Gate{Specs: cfg.Schema()}
	clean, errs := gate.Validate(t.Source)
	if clean == nil {
		return nil, missingColumns(errs)
	}
	if len(errs) > 0 {
		report.Rejected = rejectedRows(errs)
		zlog.Warning(fmt.Sprintf("%d of %d rows are rejected by validation, first: %v", report.Rejected, t.Source.Len(), errs[0].Error()))
	}

	X, y, err := dataset.Target(clean, cfg.Model.Target)
	if err != nil {
		return nil, err
	}
	if X, err = X.Only(cfg.Model.Features...); err != nil {
		return nil, err
	}
	split, err := dataset.TrainTestSplit(X, y, cfg.Model.TestSize, cfg.Model.RandomState)
	if err != nil {
		return nil, err
	}
	report.TrainRows, report.TestRows = split.Train.Len(), split.Test.Len()

	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}
	if err = p.Fit(split.Train, split.YTrain); err != nil {
		return nil, err
	}
	pred, err := p.Predict(split.Test)
	if err != nil {
		return nil, err
	}
	report.MSE = model.MSE(split.YTest, pred)
	report.R2 = model.R2(split.YTest, pred)
	t.verbose(fmt.Sprintf("[%v] train: %d, test: %d, mse: %.5f, r2: %.5f",
		report.Version, report.TrainRows, report.TestRows, report.MSE, report.R2))

	if report.Key, err = t.Manager.SaveRun(p, report.Version, report.RunID); err != nil {
		return nil, err
	}
	if !t.KeepStale {
		if report.Deleted, err = t.Manager.Cleanup(report.Version); err != nil {
			return nil, err
		}
	}
	if t.ModelFile != nil {
		if err = t.export(report.Key); err != nil {
			return nil, err
		}
	}
	zlog.Info(fmt.Sprintf("pipeline %v is saved as %v", report.RunID, report.Key))
	return report, nil
}

func (t Training) export(key string) error {
	b, err := t.Manager.Store.Get(key)
	if err != nil {
		return zorros.Trace(err)
	}
	wh, err := t.ModelFile.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if _, err = io.Copy(wh, bytes.NewReader(b)); err != nil {
		return zorros.Trace(err)
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
LuckyRun executes training and panics on error
*/
func (t Training) LuckyRun() *Report {
	r, err := t.Run()
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}
