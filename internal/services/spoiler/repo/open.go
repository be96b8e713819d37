package repo

import (
	"context"
	"strings"

	"spoilerguard/internal/modkit/repokit"
	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/store"
	"spoilerguard/internal/services/spoiler/domain"
)

// store kinds accepted by Open
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindPG     = "pg"
	KindRedis  = "redis"
)

// Backends are the opened stores a KVStore can sit on
type Backends struct {
	PG   repokit.TxRunner
	Lite repokit.TxRunner
	RDS  store.Redis
}

// Open returns the KVStore of the given kind, creating SQL tables as needed
func Open(ctx context.Context, kind string, b Backends) (domain.KVStore, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindMemory:
		return NewMemory(), nil
	case KindSQLite, "":
		if b.Lite == nil {
			return nil, perr.FailedPreconditionf("spoiler store sqlite selected but sqlite is not enabled")
		}
		return ensure(ctx, repokit.MustBind(NewLite(), b.Lite))
	case KindPG:
		if b.PG == nil {
			return nil, perr.FailedPreconditionf("spoiler store pg selected but postgres is not enabled")
		}
		return ensure(ctx, repokit.MustBind(NewPG(), b.PG))
	case KindRedis:
		if b.RDS == nil {
			return nil, perr.FailedPreconditionf("spoiler store redis selected but redis is not enabled")
		}
		return NewRedis(b.RDS), nil
	default:
		return nil, perr.InvalidArgf("unknown spoiler store %q", kind)
	}
}

func ensure(ctx context.Context, s *SQL) (domain.KVStore, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "create spoiler_kv on %s", s.Dialect())
	}
	return s, nil
}
