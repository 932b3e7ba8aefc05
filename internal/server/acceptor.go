package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"auction-service/internal/auditlog"
	"auction-service/internal/auth"
	"auction-service/utils"
)

// Server accepts auction client connections and runs one Session goroutine
// per connection. Live sessions are bounded by a weighted semaphore and
// tracked with a WaitGroup, so Stop can wait for in-flight sessions instead
// of abandoning them. Client ids come from an atomic counter owned here;
// they are unique and monotonically increasing for the process lifetime.
type Server struct {
	addr    string
	service AuctionService
	creds   auth.CredentialStore
	audit   *auditlog.Sink

	listener net.Listener
	sessions *semaphore.Weighted
	nextID   atomic.Int64
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// New creates a Server; maxSessions bounds concurrently running sessions
func New(addr string, maxSessions int64, service AuctionService, creds auth.CredentialStore, audit *auditlog.Sink) *Server {
	return &Server{
		addr:     addr,
		service:  service,
		creds:    creds,
		audit:    audit,
		sessions: semaphore.NewWeighted(maxSessions),
	}
}

// Start binds the listening socket and launches the accept loop. A bind or
// listen failure is returned to the caller, which treats it as fatal.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	s.wg.Add(1)
	go s.acceptLoop()

	s.audit.Printf("Server started")
	utils.Info("auction server listening", map[string]any{"addr": ln.Addr().String()})
	return nil
}

// Addr returns the bound listener address (useful when started on ":0")
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener and waits for running sessions to finish
func (s *Server) Stop() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	s.audit.Printf("Server stopped")
}

// acceptLoop accepts forever. A failed accept or a failed session never
// stops the loop; only closing the listener does. When the session limit is
// reached the loop pauses until a slot frees up, bounding live goroutines.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			utils.Warn("accept failed", map[string]any{"error": err.Error()})
			continue
		}

		if err := s.sessions.Acquire(context.Background(), 1); err != nil {
			_ = conn.Close()
			continue
		}

		clientID := s.nextID.Add(1)
		sess := newSession(clientID, conn, s.service, s.creds, s.audit)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.sessions.Release(1)
			sess.run()
		}()
	}
}
