// Package config reads typed settings from prefixed environment variables
//
//	core := config.New().Prefix("CORE_")
//	batch := core.Prefix("SPOILER_").MayInt("BATCH_SIZE", 150) // CORE_SPOILER_BATCH_SIZE
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"spoilerguard/internal/platform/logger"
)

// Conf is a view over the environment scoped to a key prefix
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix narrows the view, prefixes accumulate
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// may parses key with parse, falling back to def when it is unset or malformed
// a malformed value is logged so a typo does not silently pick the default
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("malformed env, using default")
		return def
	}
	return v
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return s
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	if s := c.lookup(key); s != "" {
		return s
	}
	return def
}

// MayInt returns the value as an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value as a float64 or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value as a bool or def, strconv.ParseBool spellings only
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value as a time.Duration (250ms, 1h) or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma list, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lowercased if it is one of allowed, def when unset
// a value outside allowed panics since it names a mode the binary does not have
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Strs("allowed", allowed).Msg("unsupported env value")
	return ""
}
