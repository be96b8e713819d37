// Package logger owns the process root zerolog logger and the request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"spoilerguard/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type passed around the codebase
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level     string
	Format    string // console or json
	Service   string
	Caller    bool
	SampleN   uint32
	Writer    io.Writer
	ExtraTags map[string]string
}

// FromEnv reads LOG_LEVEL LOG_FORMAT LOG_SERVICE LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:   env.Get("LEVEL", "info"),
		Format:  strings.ToLower(env.Get("FORMAT", "console")),
		Service: env.Get("SERVICE", "spoilerguard"),
		Caller:  env.GetBool("CALLER", false),
		SampleN: uint32(env.GetInt("SAMPLE_EVERY", 0)),
	}
}

var (
	initOnce sync.Once
	root     zerolog.Logger
)

// Init builds the root logger, calls after the first one are ignored
func Init(o Options) {
	initOnce.Do(func() { root = build(o) })
}

func build(o Options) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(o.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := o.Writer
	if out == nil {
		out = os.Stdout
	}
	if o.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zc := zerolog.New(out).Level(lvl).With().Timestamp()
	if o.Service != "" {
		zc = zc.Str("service", o.Service)
	}
	for k, v := range o.ExtraTags {
		zc = zc.Str(k, v)
	}
	if o.Caller {
		zc = zc.Caller()
	}
	l := zc.Logger()
	if o.SampleN > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: o.SampleN})
	}
	return l
}

// Get returns the root logger, building it from the environment on first use
func Get() *Logger {
	initOnce.Do(func() { root = build(FromEnv()) })
	return &root
}

// Named returns a child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type requestKey struct{}

type requestTags struct {
	requestID string
	clientID  string
}

// WithRequest stores request and client ids on ctx for C
// empty values keep what an outer layer already stored
func WithRequest(ctx context.Context, reqID, clientID string) context.Context {
	tags, _ := ctx.Value(requestKey{}).(requestTags)
	if reqID != "" {
		tags.requestID = reqID
	}
	if clientID != "" {
		tags.clientID = clientID
	}
	return context.WithValue(ctx, requestKey{}, tags)
}

// C returns the root logger tagged with the ids stored on ctx
func C(ctx context.Context) *Logger {
	tags, ok := ctx.Value(requestKey{}).(requestTags)
	if !ok {
		return Get()
	}
	zc := Get().With()
	if tags.requestID != "" {
		zc = zc.Str("request_id", tags.requestID)
	}
	if tags.clientID != "" {
		zc = zc.Str("client_id", tags.clientID)
	}
	l := zc.Logger()
	return &l
}
