package postdesk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/postdesk/internal/platform/timeouts"
	"github.com/louisbranch/postdesk/internal/services/postdesk/session"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
	"github.com/louisbranch/postdesk/internal/services/postdesk/webhook"
)

// Config defines the inputs for the postdesk web process.
type Config struct {
	HTTPAddr  string
	Store     store.Store
	Generator webhook.Generator
	// Board is the shared list snapshot. It is refreshed by whoever runs it.
	Board    *session.Board
	Settings Settings
}

// Server hosts the postdesk pages and fragments.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	board      *session.Board
}

// NewServer builds a configured postdesk server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.Store == nil {
		return nil, errors.New("store is required")
	}
	if config.Generator == nil {
		return nil, errors.New("generator is required")
	}

	handler := newHandler(config.Store, config.Generator, config.Board, config.Settings)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler.routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		board:      handler.board,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("postdesk server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("postdesk listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the list auto-refresh.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.board != nil {
		s.board.Close()
	}
}
