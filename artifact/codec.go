package artifact

import (
	"bytes"
	"encoding/gob"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/bikeshare/pipeline"
	"go-ml.dev/pkg/zorros"
	"time"
)

const formatVersion = 1

type envelope struct {
	Format   int
	Version  string
	RunID    string
	Created  time.Time
	Pipeline *pipeline.Snapshot
}

func encode(env *envelope) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if err = gob.NewEncoder(w).Encode(env); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(b []byte) (*envelope, error) {
	r, err := xz.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	env := &envelope{}
	if err = gob.NewDecoder(r).Decode(env); err != nil {
		return nil, err
	}
	if env.Format != formatVersion {
		return nil, zorros.Errorf("unsupported artifact format %d", env.Format)
	}
	if env.Pipeline == nil {
		return nil, zorros.Errorf("artifact has no pipeline")
	}
	return env, nil
}
