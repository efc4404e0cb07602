package artifact

import (
	"database/sql"
	"fmt"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/zorros"
	"strings"
	"time"
)

/*
SQLStore keeps artifacts in the `artifacts` table of sqlite3 or postgres database
*/
type SQLStore struct {
	db      *sql.DB
	dialect string
}

/*
OpenSQLStore opens database by driver name (sqlite3 or postgres) and creates table if needed
*/
func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	s, err := NewSQLStore(db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

/*
NewSQLStore uses already opened database
*/
func NewSQLStore(db *sql.DB, dialect string) (*SQLStore, error) {
	blob := "BLOB"
	switch dialect {
	case "sqlite3":
		db.SetMaxOpenConns(1)
	case "postgres":
		blob = "BYTEA"
	default:
		return nil, zorros.Errorf("unsupported sql dialect `%v`", dialect)
	}
	s := &SQLStore{db: db, dialect: dialect}
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS artifacts (
		name TEXT PRIMARY KEY,
		blob %s NOT NULL,
		updated TIMESTAMP NOT NULL)`, blob)
	if _, err := db.Exec(q); err != nil {
		return nil, zorros.Wrapf(err, "failed to create artifacts table: %v", err.Error())
	}
	return s, nil
}

// rebind replaces ? placeholders by $N for postgres
func (s *SQLStore) rebind(q string) string {
	if s.dialect != "postgres" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *SQLStore) Put(key string, blob []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(s.rebind(`INSERT INTO artifacts (name, blob, updated) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET blob = excluded.blob, updated = excluded.updated`),
		key, blob, time.Now().UTC())
	if err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRow(s.rebind(`SELECT blob FROM artifacts WHERE name = ?`), key).Scan(&b)
	if err == sql.ErrNoRows {
		return nil, ErrNoBlob
	}
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return b, nil
}

func (s *SQLStore) Delete(key string) error {
	if _, err := s.db.Exec(s.rebind(`DELETE FROM artifacts WHERE name = ?`), key); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func (s *SQLStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM artifacts ORDER BY name`)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	keys := []string{}
	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			return nil, zorros.Trace(err)
		}
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return keys, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
