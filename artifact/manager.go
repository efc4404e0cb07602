/*
Package artifact persists fitted pipelines as immutable versioned blobs
*/
package artifact

import (
	"fmt"
	"github.com/google/uuid"
	"go-ml.dev/pkg/bikeshare/pipeline"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/xerrors"
	"sort"
	"strings"
	"time"
)

/*
Ext is the extension of artifact keys
*/
const Ext = ".gob.xz"

/*
ArtifactNotFoundError means there is no blob stored under the key
*/
type ArtifactNotFoundError struct {
	Key string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("artifact `%s` is not found", e.Key)
}

/*
ArtifactCorruptError means the stored blob can't be restored to a pipeline
*/
type ArtifactCorruptError struct {
	Key string
	Err error
}

func (e *ArtifactCorruptError) Error() string {
	return fmt.Sprintf("artifact `%s` is corrupt: %v", e.Key, e.Err)
}

func (e *ArtifactCorruptError) Unwrap() error {
	return e.Err
}

/*
Info describes stored artifact
*/
type Info struct {
	Key     string
	Version string
	RunID   string
	Created time.Time
}

/*
Manager saves and loads fitted pipelines keeping one artifact per version
*/
type Manager struct {
	Store  Store
	Prefix string // key prefix, like bikeshare__model_output_v
}

func NewManager(store Store, prefix string) *Manager {
	return &Manager{Store: store, Prefix: prefix}
}

/*
Key returns storage key of the version
*/
func (m *Manager) Key(version string) string {
	return m.Prefix + version + Ext
}

func (m *Manager) version(key string) (string, bool) {
	if !strings.HasPrefix(key, m.Prefix) || !strings.HasSuffix(key, Ext) || len(key) <= len(m.Prefix)+len(Ext) {
		return "", false
	}
	return key[len(m.Prefix) : len(key)-len(Ext)], true
}

func checkVersion(version string) error {
	if version == "" || strings.ContainsAny(version, `/\`) {
		return zorros.Errorf("invalid artifact version `%v`", version)
	}
	return nil
}

/*
Save stores fitted pipeline as the version artifact, existing artifact of the version is replaced
*/
func (m *Manager) Save(p *pipeline.Pipeline, version string) (string, error) {
	return m.SaveRun(p, version, uuid.New().String())
}

/*
SaveRun is Save with known training run id
*/
func (m *Manager) SaveRun(p *pipeline.Pipeline, version, runID string) (string, error) {
	if err := checkVersion(version); err != nil {
		return "", err
	}
	snap, err := p.Snapshot()
	if err != nil {
		return "", err
	}
	b, err := encode(&envelope{
		Format:   formatVersion,
		Version:  version,
		RunID:    runID,
		Created:  time.Now().UTC(),
		Pipeline: snap,
	})
	if err != nil {
		return "", zorros.Wrapf(err, "failed to encode pipeline: %v", err.Error())
	}
	key := m.Key(version)
	if err = m.Store.Put(key, b); err != nil {
		return "", zorros.Trace(err)
	}
	return key, nil
}

func (m *Manager) open(key string) (*envelope, error) {
	if checkKey(key) != nil {
		return nil, &ArtifactNotFoundError{Key: key}
	}
	b, err := m.Store.Get(key)
	if err != nil {
		if xerrors.Is(err, ErrNoBlob) {
			return nil, &ArtifactNotFoundError{Key: key}
		}
		return nil, zorros.Trace(err)
	}
	env, err := decode(b)
	if err != nil {
		return nil, &ArtifactCorruptError{Key: key, Err: err}
	}
	if v, ok := m.version(key); ok && v != env.Version {
		return nil, &ArtifactCorruptError{Key: key, Err: zorros.Errorf("artifact has version `%v`", env.Version)}
	}
	return env, nil
}

/*
Load restores fitted pipeline stored under the key.
A key which no store can hold, like `a/b`, is not found.
*/
func (m *Manager) Load(key string) (*pipeline.Pipeline, error) {
	env, err := m.open(key)
	if err != nil {
		return nil, err
	}
	p, err := pipeline.Restore(env.Pipeline)
	if err != nil {
		return nil, &ArtifactCorruptError{Key: key, Err: err}
	}
	return p, nil
}

/*
LoadVersion restores fitted pipeline of the version
*/
func (m *Manager) LoadVersion(version string) (*pipeline.Pipeline, error) {
	if err := checkVersion(version); err != nil {
		return nil, err
	}
	return m.Load(m.Key(version))
}

/*
Info returns metadata of stored artifact
*/
func (m *Manager) Info(key string) (Info, error) {
	env, err := m.open(key)
	if err != nil {
		return Info{}, err
	}
	return Info{Key: key, Version: env.Version, RunID: env.RunID, Created: env.Created}, nil
}

/*
Versions returns sorted versions of stored artifacts
*/
func (m *Manager) Versions() ([]string, error) {
	keys, err := m.Store.Keys()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	r := []string{}
	for _, k := range keys {
		if v, ok := m.version(k); ok {
			r = append(r, v)
		}
	}
	sort.Strings(r)
	return r, nil
}

/*
Cleanup deletes artifacts of all versions except the active one and returns deleted keys
*/
func (m *Manager) Cleanup(active string) ([]string, error) {
	keys, err := m.Store.Keys()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	keep := m.Key(active)
	deleted := []string{}
	for _, k := range keys {
		if _, ok := m.version(k); !ok || k == keep {
			continue
		}
		if err = m.Store.Delete(k); err != nil {
			return deleted, zorros.Trace(err)
		}
		zlog.Info(fmt.Sprintf("stale artifact %v is deleted", k))
		deleted = append(deleted, k)
	}
	return deleted, nil
}
