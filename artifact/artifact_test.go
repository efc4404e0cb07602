package artifact

import (
	"go-ml.dev/pkg/bikeshare/config"
	"go-ml.dev/pkg/bikeshare/dataset"
	"go-ml.dev/pkg/bikeshare/features"
	"go-ml.dev/pkg/bikeshare/model"
	"go-ml.dev/pkg/bikeshare/pipeline"
	"go-ml.dev/pkg/bikeshare/tables"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"path/filepath"
	"testing"
)

const prefix = "bikeshare__model_output_v"

func fitted(t *testing.T) *pipeline.Pipeline {
	cfg := config.Default()
	cfg.Model.Params = model.Params{"n_estimators": 5, "max_depth": 4}
	p, err := pipeline.New(cfg)
	assert.NilError(t, err)
	q, y, err := dataset.Target(dataset.Synthetic(300, 1), "cnt")
	assert.NilError(t, err)
	assert.NilError(t, p.Fit(q, y))
	return p
}

func roundTrip(t *testing.T, store Store) {
	p := fitted(t)
	m := NewManager(store, prefix)
	key, err := m.SaveRun(p, "0.0.1", "run-1")
	assert.NilError(t, err)
	assert.Assert(t, key == "bikeshare__model_output_v0.0.1.gob.xz")

	r, err := m.Load(key)
	assert.NilError(t, err)
	assert.Assert(t, r.State() == pipeline.Fitted)
	assert.DeepEqual(t, r.Features(), p.Features())

	q := dataset.Synthetic(40, 9)
	a, err := p.Predict(q)
	assert.NilError(t, err)
	b, err := r.Predict(q)
	assert.NilError(t, err)
	assert.DeepEqual(t, a, b)

	info, err := m.Info(key)
	assert.NilError(t, err)
	assert.Assert(t, info.Version == "0.0.1" && info.RunID == "run-1")
	assert.Assert(t, !info.Created.IsZero())
}

func Test_MemStore1(t *testing.T) {
	roundTrip(t, NewMemStore())
}

func Test_FileStore1(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	assert.Assert(t, s.Dir == dir)
	roundTrip(t, s)
	keys, err := s.Keys()
	assert.NilError(t, err)
	assert.DeepEqual(t, keys, []string{"bikeshare__model_output_v0.0.1.gob.xz"})
}

func Test_SQLStore1(t *testing.T) {
	s, err := OpenSQLStore("sqlite3", filepath.Join(t.TempDir(), "artifacts.db"))
	assert.NilError(t, err)
	defer s.Close()
	roundTrip(t, s)

	assert.NilError(t, s.Put("a", []byte{1}))
	assert.NilError(t, s.Put("a", []byte{2}))
	b, err := s.Get("a")
	assert.NilError(t, err)
	assert.DeepEqual(t, b, []byte{2})
	assert.NilError(t, s.Delete("a"))
	_, err = s.Get("a")
	assert.Assert(t, err == ErrNoBlob)
}

func Test_NotFound1(t *testing.T) {
	m := NewManager(NewMemStore(), prefix)
	_, err := m.LoadVersion("9.9.9")
	var e *ArtifactNotFoundError
	assert.Assert(t, xerrors.As(err, &e))
	assert.Assert(t, e.Key == "bikeshare__model_output_v9.9.9.gob.xz")

	m = NewManager(NewFileStore(t.TempDir()), prefix)
	_, err = m.LoadVersion("9.9.9")
	assert.Assert(t, xerrors.As(err, &e))
	_, err = m.LoadVersion("../x")
	assert.ErrorContains(t, err, "invalid artifact version")
}

func Test_Corrupt1(t *testing.T) {
	s := NewMemStore()
	m := NewManager(s, prefix)
	assert.NilError(t, s.Put(m.Key("0.0.1"), []byte("definitely not an artifact")))
	_, err := m.LoadVersion("0.0.1")
	var e *ArtifactCorruptError
	assert.Assert(t, xerrors.As(err, &e))
	assert.Assert(t, e.Key == m.Key("0.0.1"))

	_, err = m.Save(fitted(t), "0.0.2")
	assert.NilError(t, err)
	b, err := s.Get(m.Key("0.0.2"))
	assert.NilError(t, err)
	assert.NilError(t, s.Put(m.Key("0.0.3"), b))
	_, err = m.LoadVersion("0.0.3")
	assert.Assert(t, xerrors.As(err, &e))
	assert.ErrorContains(t, err, "has version `0.0.2`")
}

func Test_Save1(t *testing.T) {
	p, err := pipeline.New(config.Default())
	assert.NilError(t, err)
	m := NewManager(NewMemStore(), prefix)
	_, err = m.Save(p, "0.0.1")
	var e *pipeline.NotFittedError
	assert.Assert(t, xerrors.As(err, &e))
	vs, err := m.Versions()
	assert.NilError(t, err)
	assert.Assert(t, len(vs) == 0)
}

func Test_Cleanup1(t *testing.T) {
	s := NewMemStore()
	m := NewManager(s, prefix)
	p := fitted(t)
	for _, v := range []string{"0.0.1", "0.0.2", "0.0.3"} {
		_, err := m.Save(p, v)
		assert.NilError(t, err)
	}
	assert.NilError(t, s.Put("unrelated.txt", []byte("x")))

	vs, err := m.Versions()
	assert.NilError(t, err)
	assert.DeepEqual(t, vs, []string{"0.0.1", "0.0.2", "0.0.3"})

	deleted, err := m.Cleanup("0.0.2")
	assert.NilError(t, err)
	assert.DeepEqual(t, deleted, []string{m.Key("0.0.1"), m.Key("0.0.3")})
	keys, err := s.Keys()
	assert.NilError(t, err)
	assert.DeepEqual(t, keys, []string{m.Key("0.0.2"), "unrelated.txt"})

	_, err = m.LoadVersion("0.0.2")
	assert.NilError(t, err)
}

func Test_Overwrite1(t *testing.T) {
	m := NewManager(NewMemStore(), prefix)
	p := fitted(t)
	_, err := m.SaveRun(p, "0.0.1", "first")
	assert.NilError(t, err)
	_, err = m.SaveRun(p, "0.0.1", "second")
	assert.NilError(t, err)
	info, err := m.Info(m.Key("0.0.1"))
	assert.NilError(t, err)
	assert.Assert(t, info.RunID == "second")
	vs, err := m.Versions()
	assert.NilError(t, err)
	assert.DeepEqual(t, vs, []string{"0.0.1"})
}

func Test_Key1(t *testing.T) {
	assert.ErrorContains(t, NewMemStore().Put("a/b", nil), "invalid artifact key")
	assert.ErrorContains(t, NewFileStore(t.TempDir()).Put("..", nil), "invalid artifact key")
	_, err := NewMemStore().Get("x")
	assert.Assert(t, err == ErrNoBlob)
	_, err = OpenStore("s3", "", "")
	assert.ErrorContains(t, err, "unknown artifact store")
}

func Test_Frozen1(t *testing.T) {
	cfg := config.Default()
	cfg.Model.StatsPolicy = "frozen"
	cfg.Model.Params = model.Params{"n_estimators": 5, "max_depth": 4}
	p, err := pipeline.New(cfg)
	assert.NilError(t, err)
	q, y, err := dataset.Target(dataset.Synthetic(300, 1), "cnt")
	assert.NilError(t, err)
	assert.NilError(t, p.Fit(q, y))

	s, _ := p.Stage("weather_imputer")
	mode := s.(*features.WeathersitImputer).Mode
	assert.Assert(t, mode != "")
	s, _ = p.Stage("numeric_outlier_handler")
	fences := s.(*features.OutlierClamp).Fences
	assert.Assert(t, len(fences) == 4)

	m := NewManager(NewMemStore(), prefix)
	_, err = m.Save(p, "0.0.1")
	assert.NilError(t, err)
	r, err := m.LoadVersion("0.0.1")
	assert.NilError(t, err)
	s, _ = r.Stage("weather_imputer")
	assert.Assert(t, s.(*features.WeathersitImputer).Mode == mode)
	assert.Assert(t, s.(*features.WeathersitImputer).Policy == features.FrozenStatistics)
	s, _ = r.Stage("numeric_outlier_handler")
	assert.DeepEqual(t, s.(*features.OutlierClamp).Fences, fences)

	row := dataset.Synthetic(1, 3).With(tables.Col([]interface{}{nil}), "weathersit")
	a, err := p.Predict(row)
	assert.NilError(t, err)
	b, err := r.Predict(row)
	assert.NilError(t, err)
	assert.Assert(t, len(a) == 1)
	assert.DeepEqual(t, a, b)

	batch := *cfg
	batch.Model.StatsPolicy = "batch"
	pb, err := pipeline.New(&batch)
	assert.NilError(t, err)
	assert.NilError(t, pb.Fit(q, y))
	_, err = pb.Predict(row)
	var e *features.EmptyColumnError
	assert.Assert(t, xerrors.As(err, &e))
}

func Test_InvalidKey1(t *testing.T) {
	for _, s := range []Store{NewMemStore(), NewFileStore(t.TempDir())} {
		m := NewManager(s, prefix)
		_, err := m.Load("a/b")
		var e *ArtifactNotFoundError
		assert.Assert(t, xerrors.As(err, &e))
		assert.Assert(t, e.Key == "a/b")
		_, err = m.Info("..")
		assert.Assert(t, xerrors.As(err, &e))
		_, err = s.Get("a/b")
		assert.ErrorContains(t, err, "invalid artifact key")
	}
}
