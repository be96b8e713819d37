package api

import (
	"context"

	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"
	"spoilerguard/internal/platform/store"

	spoilerrepo "spoilerguard/internal/services/spoiler/repo"
)

// StoreConfig derives backend settings from SERVICE_* keys
// a backend the spoiler tier selects is enabled unless its ENABLED key says otherwise
func StoreConfig(root config.Conf, tag string) store.Config {
	kind := root.Prefix("CORE_SPOILER_").MayEnum("STORE", spoilerrepo.KindSQLite,
		spoilerrepo.KindMemory, spoilerrepo.KindSQLite, spoilerrepo.KindPG, spoilerrepo.KindRedis)

	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	liteCfg := root.Prefix("SERVICE_SQLITE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")

	c := store.Config{AppName: "spoilerguard"}

	if pgCfg.MayBool("ENABLED", kind == spoilerrepo.KindPG) {
		c.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	}
	if chCfg.MayBool("ENABLED", false) {
		c.CH = store.CHConfig{
			Enabled: true,
			URL:     chCfg.MustString("DBURL"),
			Tag:     tag,
		}
	}
	if liteCfg.MayBool("ENABLED", kind == spoilerrepo.KindSQLite) {
		c.Lite = store.LiteConfig{
			Enabled: true,
			Path:    liteCfg.MayString("PATH", "spoilerguard.db"),
		}
	}
	if rdsCfg.MayBool("ENABLED", kind == spoilerrepo.KindRedis) {
		c.RDS = store.RedisConfig{
			Enabled:  true,
			URL:      rdsCfg.MustString("URL"),
			PoolSize: rdsCfg.MayInt("POOL_SIZE", 10),
		}
	}
	return c
}

// OpenStore opens the backends named by StoreConfig
func OpenStore(ctx context.Context, root config.Conf, tag string, log logger.Logger) (*store.Store, error) {
	return store.Open(ctx, StoreConfig(root, tag), store.WithLogger(log))
}
