package modkit

import (
	"spoilerguard/internal/modkit/repokit"
	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"
	"spoilerguard/internal/platform/store"
)

// Deps are the shared handles every module receives
// backend seams are nil when the store left them disabled
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	CH   store.Clickhouse
	Lite repokit.TxRunner
	RDS  store.Redis
}

// FromStore builds Deps from the backends st opened, a nil st yields no backends
func FromStore(log logger.Logger, cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG, d.CH, d.Lite, d.RDS = st.PG, st.CH, st.Lite, st.RDS
	}
	return d
}
