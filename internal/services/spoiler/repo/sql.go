package repo

import (
	"context"

	"spoilerguard/internal/modkit/repokit"
	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/store"
)

type dialect struct {
	name   string
	ddl    string
	all    string
	upsert string
	remove string
}

var pgDialect = dialect{
	name: "pg",
	ddl: `
CREATE TABLE IF NOT EXISTS spoiler_kv (
	k          TEXT PRIMARY KEY,
	v          TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	all: `SELECT k, v FROM spoiler_kv WHERE starts_with(k, $1)`,
	upsert: `
INSERT INTO spoiler_kv (k, v, updated_at) VALUES ($1, $2, now())
ON CONFLICT (k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
	remove: `DELETE FROM spoiler_kv WHERE k = $1`,
}

// sqlite LIKE folds ascii case so prefix matching compares substrings instead
var liteDialect = dialect{
	name: "sqlite",
	ddl: `
CREATE TABLE IF NOT EXISTS spoiler_kv (
	k          TEXT PRIMARY KEY,
	v          TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	all: `SELECT k, v FROM spoiler_kv WHERE substr(k, 1, length(?1)) = ?1`,
	upsert: `
INSERT INTO spoiler_kv (k, v, updated_at) VALUES (?1, ?2, CURRENT_TIMESTAMP)
ON CONFLICT (k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
	remove: `DELETE FROM spoiler_kv WHERE k = ?1`,
}

// SQL is a KVStore over a single spoiler_kv table
type SQL struct {
	q repokit.Queryer
	d dialect
}

// NewPG returns a binder for postgres backed stores
func NewPG() repokit.Binder[*SQL] {
	return repokit.BindFunc[*SQL](func(q repokit.Queryer) *SQL { return &SQL{q: q, d: pgDialect} })
}

// NewLite returns a binder for sqlite backed stores
func NewLite() repokit.Binder[*SQL] {
	return repokit.BindFunc[*SQL](func(q repokit.Queryer) *SQL { return &SQL{q: q, d: liteDialect} })
}

// Dialect names the SQL flavour in use
func (s *SQL) Dialect() string { return s.d.name }

// EnsureSchema creates the table when missing
func (s *SQL) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, s.d.ddl)
	return err
}

// All implements domain.KVStore
func (s *SQL) All(ctx context.Context, prefix string) (map[string][]byte, error) {
	pairs, err := store.Pairs(ctx, s.q, s.d.all, prefix)
	if err != nil {
		return nil, perr.FromStore(err, s.d.name+" kv scan failed")
	}
	out := make(map[string][]byte, len(pairs))
	for k, v := range pairs {
		out[k] = []byte(v)
	}
	return out, nil
}

// Set implements domain.KVStore
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.q.Exec(ctx, s.d.upsert, key, string(value))
	return perr.FromStore(err, s.d.name+" kv set failed")
}

// Remove implements domain.KVStore
func (s *SQL) Remove(ctx context.Context, key string) error {
	_, err := s.q.Exec(ctx, s.d.remove, key)
	return perr.FromStore(err, s.d.name+" kv remove failed")
}
