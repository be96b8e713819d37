// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"spoilerguard/internal/core/version"
	"spoilerguard/internal/modkit/httpkit"
)

// Probe states, a check or the overall readiness
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusUnknown  = "unknown"
	StatusDegraded = "degraded"
)

// Check is one backend /ready reports on
// a nil Seam is a disabled backend, a Seam without Ping is unknown
type Check struct {
	Name string
	Seam any
}

// Deps configure the meta routes
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check

	// ReadyTimeout bounds all pings of one /ready call, 2s when zero
	ReadyTimeout time.Duration
}

// HealthResponse answers /health
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck is the outcome of pinging one backend
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse answers /ready, Status is the worst of the checks
type ReadyResponse struct {
	Status string       `json:"status"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse answers /service, Uptime is whole seconds
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

type meta struct {
	Deps
	now func() time.Time
}

// Register mounts GET /health, /ready, /version and /service on r
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	m := &meta{Deps: d, now: time.Now}

	httpkit.Get(r, "/health", m.health)
	httpkit.Get(r, "/ready", m.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", m.service)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (m *meta) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: m.ServiceName, Started: stamp(m.StartedAt), Now: stamp(m.now())}, nil
}

func (m *meta) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    m.ServiceName,
		Started: stamp(m.StartedAt),
		Uptime:  int64(m.now().Sub(m.StartedAt) / time.Second),
	}, nil
}

// severity orders check states for the overall status, skipped backends weigh nothing
var severity = map[string]int{StatusOK: 0, StatusSkipped: 0, StatusUnknown: 1, StatusFail: 2}

func (m *meta) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), m.ReadyTimeout)
	defer cancel()

	out := ReadyResponse{Status: StatusOK, Checks: make([]ReadyCheck, 0, len(m.Checks))}
	worst := 0
	for _, c := range m.Checks {
		rc := probe(ctx, c)
		out.Checks = append(out.Checks, rc)
		worst = max(worst, severity[rc.Status])
	}
	switch worst {
	case 1:
		out.Status = StatusDegraded
	case 2:
		out.Status = StatusFail
	}
	out.Now = stamp(m.now())
	return out, nil
}

func probe(ctx context.Context, c Check) ReadyCheck {
	rc := ReadyCheck{Name: c.Name, Status: StatusOK}
	if c.Seam == nil {
		rc.Status = StatusSkipped
		return rc
	}
	p, ok := c.Seam.(interface{ Ping(context.Context) error })
	if !ok {
		rc.Status = StatusUnknown
		return rc
	}
	if err := p.Ping(ctx); err != nil {
		rc.Status, rc.Error = StatusFail, err.Error()
	}
	return rc
}
