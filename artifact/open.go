package artifact

import (
	"go-ml.dev/pkg/zorros"
)

/*
OpenStore creates store by kind: file (default), memory, sqlite3 or postgres
*/
func OpenStore(kind, dir, dsn string) (Store, error) {
	switch kind {
	case "", "file":
		return NewFileStore(dir), nil
	case "memory":
		return NewMemStore(), nil
	case "sqlite3", "postgres":
		return OpenSQLStore(kind, dsn)
	}
	return nil, zorros.Errorf("unknown artifact store `%v`", kind)
}
