package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server is a running HTTP listener.
type Server struct {
	srv *http.Server
	lis net.Listener
}

// Start listens on addr and serves handler in the background.
// Use Shutdown to stop it.
func Start(addr string, handler http.Handler, logger zerolog.Logger) (*Server, error) {
	if addr == "" {
		addr = ":5000"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		lis: lis,
	}
	go func() {
		if err := s.srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()
	return s, nil
}

// Addr is the address actually bound, useful when addr had port 0.
func (s *Server) Addr() string {
	return s.lis.Addr().String()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires, after which remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		_ = s.srv.Close()
		return err
	}
	return nil
}
