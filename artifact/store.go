package artifact

import (
	"go-ml.dev/pkg/bikeshare/fu"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

/*
ErrNoBlob is returned by stores when there is nothing stored under the key
*/
var ErrNoBlob = xerrors.New("no blob stored under the key")

/*
Store is a key/value byte store of artifacts
*/
type Store interface {
	Put(key string, blob []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Keys() ([]string, error)
}

func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return zorros.Errorf("invalid artifact key `%v`", key)
	}
	return nil
}

/*
FileStore keeps every artifact in a file of the directory
*/
type FileStore struct {
	Dir string
}

/*
NewFileStore creates store in dir, relative dir is resolved into the local cache
*/
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: fu.ArtifactPath(dir)}
}

const tempPrefix = ".tmp-"

func (s *FileStore) Put(key string, blob []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return zorros.Trace(err)
	}
	f, err := ioutil.TempFile(s.Dir, tempPrefix+"*")
	if err != nil {
		return zorros.Trace(err)
	}
	defer os.Remove(f.Name())
	if _, err = f.Write(blob); err != nil {
		f.Close()
		return zorros.Trace(err)
	}
	if err = f.Close(); err != nil {
		return zorros.Trace(err)
	}
	if err = os.Rename(f.Name(), filepath.Join(s.Dir, key)); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func (s *FileStore) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	b, err := ioutil.ReadFile(filepath.Join(s.Dir, key))
	if os.IsNotExist(err) {
		return nil, ErrNoBlob
	}
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return b, nil
}

func (s *FileStore) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.Dir, key))
	if err != nil && !os.IsNotExist(err) {
		return zorros.Trace(err)
	}
	return nil
}

func (s *FileStore) Keys() ([]string, error) {
	fs, err := ioutil.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, zorros.Trace(err)
	}
	keys := []string{}
	for _, f := range fs {
		if !f.IsDir() && !strings.HasPrefix(f.Name(), tempPrefix) {
			keys = append(keys, f.Name())
		}
	}
	return keys, nil
}

/*
MemStore is an in-memory store
*/
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: map[string][]byte{}}
}

func (s *MemStore) Put(key string, blob []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (s *MemStore) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, ErrNoBlob
	}
	return append([]byte(nil), b...), nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *MemStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
