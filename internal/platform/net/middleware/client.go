package middleware

import (
	"net/http"
	"strings"

	"spoilerguard/internal/platform/logger"
	pnet "spoilerguard/internal/platform/net"
)

// ClientIDHeader carries the extension install id
const ClientIDHeader = "X-Client-ID"

const maxClientIDLen = 64

// ClientID copies X-Client-ID onto the request and logger contexts
// ids that are too long or contain anything beyond [A-Za-z0-9._-] are ignored
func ClientID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
			if !validClientID(id) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := pnet.WithRequest(r.Context(), "", id)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validClientID(s string) bool {
	if s == "" || len(s) > maxClientIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
