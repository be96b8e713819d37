package httpkit

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	"spoilerguard/internal/platform/net/middleware"
)

// StackOptions tunes CommonStackWith
type StackOptions struct {
	// AllowedOrigins feeds CORS, empty allows any origin
	// the extension calls from chrome-extension:// and moz-extension:// origins
	AllowedOrigins []string

	// Timeout is an API wide deadline, 0 leaves deadlines to the modules
	Timeout time.Duration

	// SlowRequest logs requests at warn past this duration, 0 never warns
	SlowRequest time.Duration
}

// CommonStackWith is the middleware chain applied under the API prefix
func CommonStackWith(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.ClientID(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.AllowedOrigins}),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
	}
	if o.Timeout > 0 {
		stack = append(stack, middleware.Timeout(o.Timeout))
	}
	return stack
}

// Timeout bounds requests under a module prefix, d <= 0 is a no-op
// an inner deadline can only shorten an outer one
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.Timeout(d)
}

// Heartbeat answers GET path on r before any routing, for load balancer probes
// it must be installed before routes are mounted on r
func Heartbeat(r Router, path string) {
	r.Use(middleware.Heartbeat(path))
}

// MountAPI mounts mw and the routes from mount under /api/{version}
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
