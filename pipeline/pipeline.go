/*
Package pipeline chains column transforms and a regressor into one fitted unit
*/
package pipeline

import (
	"fmt"
	"go-ml.dev/pkg/bikeshare/model"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
)

/*
Stage is a single column transform of the pipeline.
Fit receives the same representation the stage later sees in Transform.
Transform must not modify its input and must keep count of rows.
*/
type Stage interface {
	Fit(t *tables.Table, target []float64) error
	Transform(t *tables.Table) (*tables.Table, error)
}

/*
Step is a named stage
*/
type Step struct {
	Name  string
	Stage Stage
}

/*
State is the pipeline lifecycle state
*/
type State int

const (
	Unfit State = iota
	Fitting
	Fitted
)

func (s State) String() string {
	switch s {
	case Fitting:
		return "fitting"
	case Fitted:
		return "fitted"
	}
	return "unfit"
}

/*
NotFittedError means the pipeline is used to predict before it's fitted
*/
type NotFittedError struct {
	State State
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("pipeline is %v, fit it before use", e.State)
}

/*
Pipeline is an ordered list of stages terminated by a regressor.
Fit is not safe for concurrent use, Predict on fitted pipeline is.
*/
type Pipeline struct {
	steps    []Step
	model    model.Regressor
	features []string
	state    State
}

/*
NewPipeline creates unfitted pipeline
*/
func NewPipeline(m model.Regressor, steps ...Step) *Pipeline {
	return &Pipeline{steps: append([]Step(nil), steps...), model: m}
}

func (p *Pipeline) State() State {
	return p.state
}

/*
Steps returns names of stages in execution order
*/
func (p *Pipeline) Steps() []string {
	r := make([]string, len(p.steps))
	for i, s := range p.steps {
		r[i] = s.Name
	}
	return r
}

/*
Stage returns stage by name
*/
func (p *Pipeline) Stage(name string) (Stage, bool) {
	for _, s := range p.steps {
		if s.Name == name {
			return s.Stage, true
		}
	}
	return nil, false
}

/*
Features returns columns the regressor was fitted on
*/
func (p *Pipeline) Features() []string {
	return append([]string(nil), p.features...)
}

func apply(s Step, t *tables.Table) (*tables.Table, error) {
	out, err := s.Stage.Transform(t)
	if err != nil {
		return nil, xerrors.Errorf("stage %v: %w", s.Name, err)
	}
	if out.Len() != t.Len() {
		return nil, zorros.Errorf("stage %v changed count of rows from %d to %d", s.Name, t.Len(), out.Len())
	}
	return out, nil
}

/*
Fit fits every stage on the output of the previous one and then the regressor.
Previous fitted state is replaced, failed fit leaves pipeline unfit.
*/
func (p *Pipeline) Fit(t *tables.Table, y []float64) (err error) {
	if len(y) != t.Len() {
		return zorros.Errorf("table has %d rows but target has %d values", t.Len(), len(y))
	}
	p.state = Fitting
	p.features = nil
	defer func() {
		if err != nil {
			p.state = Unfit
		}
	}()
	for _, s := range p.steps {
		if err = s.Stage.Fit(t, y); err != nil {
			return xerrors.Errorf("fit stage %v: %w", s.Name, err)
		}
		if t, err = apply(s, t); err != nil {
			return err
		}
	}
	features := t.Names()
	X, err := t.Matrix(features)
	if err != nil {
		return xerrors.Errorf("model: %w", err)
	}
	if err = p.model.Fit(X, y); err != nil {
		return zorros.Wrapf(err, "model: %v", err.Error())
	}
	p.features = features
	p.state = Fitted
	return nil
}

/*
Transform runs all stages of fitted pipeline
*/
func (p *Pipeline) Transform(t *tables.Table) (_ *tables.Table, err error) {
	if p.state != Fitted {
		return nil, &NotFittedError{p.state}
	}
	for _, s := range p.steps {
		if t, err = apply(s, t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

/*
Predict transforms table and predicts by the fitted regressor
*/
func (p *Pipeline) Predict(t *tables.Table) ([]float64, error) {
	t, err := p.Transform(t)
	if err != nil {
		return nil, err
	}
	X, err := t.Matrix(p.features)
	if err != nil {
		return nil, xerrors.Errorf("model: %w", err)
	}
	y, err := p.model.Predict(X)
	if err != nil {
		return nil, zorros.Wrapf(err, "model: %v", err.Error())
	}
	return y, nil
}

/*
Snapshot is the serializable state of fitted pipeline
*/
type Snapshot struct {
	Steps    []Step
	Model    model.Regressor
	Features []string
}

/*
Snapshot returns state of fitted pipeline
*/
func (p *Pipeline) Snapshot() (*Snapshot, error) {
	if p.state != Fitted {
		return nil, &NotFittedError{p.state}
	}
	return &Snapshot{Steps: append([]Step(nil), p.steps...), Model: p.model, Features: p.Features()}, nil
}

/*
Restore creates fitted pipeline from snapshot
*/
func Restore(s *Snapshot) (*Pipeline, error) {
	if s == nil || s.Model == nil || len(s.Features) == 0 {
		return nil, zorros.Errorf("incomplete pipeline snapshot")
	}
	for i, x := range s.Steps {
		if x.Stage == nil {
			return nil, zorros.Errorf("pipeline snapshot step %d `%v` has no stage", i, x.Name)
		}
	}
	p := NewPipeline(s.Model, s.Steps...)
	p.features = append([]string(nil), s.Features...)
	p.state = Fitted
	return p, nil
}
