package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the listener lifecycle
type Server struct {
	mux *chi.Mux
	srv *http.Server
}

// NewServer reads API_PORT (default :4000) and API_READ_HEADER_TIMEOUT from cfg
func NewServer(cfg config.Conf) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	if addr[0] != ':' && !hasHost(addr) {
		addr = ":" + addr
	}
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &http.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("API_READ_HEADER_TIMEOUT", 10*time.Second),
		},
	}
}

func hasHost(addr string) bool {
	_, _, err := net.SplitHostPort(addr)
	return err == nil
}

// Router exposes the root mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until Shutdown
// in flight requests keep their own contexts so Shutdown can drain them after ctx ends
func (s *Server) Run(ctx context.Context) error {
	logger.C(ctx).Info().Str("addr", s.srv.Addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
