package telnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/config"
)

// Handler plays one client's session.
type Handler interface {
	Serve(ctx context.Context, conn *Conn) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, conn *Conn) error

// Serve calls f.
func (f HandlerFunc) Serve(ctx context.Context, conn *Conn) error { return f(ctx, conn) }

// Acceptor listens for telnet clients and runs a Handler for each on its own
// goroutine.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler Handler
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[*Conn]struct{}
	cancel   context.CancelFunc
	running  bool
	wg       sync.WaitGroup
}

// NewAcceptor creates an Acceptor.
//
// Precondition: handler and logger are non-nil.
func NewAcceptor(cfg config.TelnetConfig, handler Handler, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		conns:   make(map[*Conn]struct{}),
	}
}

// Serve accepts clients until Stop is called or ctx ends.
//
// Precondition: Serve has not been called before.
// Postcondition: returns nil after Stop or cancellation, once every session
// has ended; the listener is closed.
func (a *Acceptor) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	a.listener = ln
	a.cancel = cancel
	a.running = true
	a.mu.Unlock()

	a.logger.Info("telnet listening", zap.String("addr", ln.Addr().String()))

	go func() {
		<-ctx.Done()
		a.Stop()
	}()

	for {
		raw, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				a.wg.Wait()
				return nil
			}
			a.logger.Warn("accepting connection", zap.Error(err))
			continue
		}
		conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
		if !a.track(conn) {
			_ = conn.Close()
			continue
		}
		go a.serve(ctx, conn)
	}
}

// track registers conn unless the acceptor is stopping.
func (a *Acceptor) track(conn *Conn) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return false
	}
	a.conns[conn] = struct{}{}
	a.wg.Add(1)
	return true
}

func (a *Acceptor) serve(ctx context.Context, conn *Conn) {
	defer a.wg.Done()
	defer func() {
		a.mu.Lock()
		delete(a.conns, conn)
		a.mu.Unlock()
		_ = conn.Close()
	}()

	start := time.Now()
	addr := conn.RemoteAddr().String()
	a.logger.Info("client connected", zap.String("remote_addr", addr))

	if err := conn.Negotiate(); err != nil {
		a.logger.Warn("telnet negotiation failed", zap.String("remote_addr", addr), zap.Error(err))
		return
	}
	if err := a.handler.Serve(ctx, conn); err != nil {
		a.logger.Info("session ended",
			zap.String("remote_addr", addr),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	a.logger.Info("session ended",
		zap.String("remote_addr", addr),
		zap.Duration("duration", time.Since(start)),
	)
}

// Stop closes the listener and every open connection. It is safe to call
// more than once and before Serve.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	a.cancel()
	_ = a.listener.Close()
	for conn := range a.conns {
		_ = conn.Close()
	}
	a.logger.Info("telnet stopped", zap.Int("sessions", len(a.conns)))
}

// Addr is the listening address, or "" before Serve has bound.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Sessions is the number of connected clients.
func (a *Acceptor) Sessions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.conns)
}

// IsRunning reports whether the acceptor is accepting clients.
func (a *Acceptor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}
