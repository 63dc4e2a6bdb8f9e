// Package server runs the game's long-lived services and shuts them down
// together on a signal, a cancelled context, or the first service to finish.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component.
type Service interface {
	// Start runs the service until it finishes, fails, or ctx is done.
	Start(ctx context.Context) error
	// Stop asks a running Start to return. It must be safe to call more
	// than once and before Start.
	Stop()
}

// FuncService adapts a start/stop function pair into a Service. A nil StopFn
// does nothing.
type FuncService struct {
	StartFn func(ctx context.Context) error
	StopFn  func()
}

// Start calls StartFn.
func (f *FuncService) Start(ctx context.Context) error { return f.StartFn(ctx) }

// Stop calls StopFn.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Lifecycle starts services in the order they were added and stops them in
// reverse.
type Lifecycle struct {
	logger  *zap.Logger
	signals []os.Signal
	grace   time.Duration

	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		grace:   DefaultGrace,
	}
}

// DefaultGrace is how long Run waits for stopped services to return.
const DefaultGrace = 5 * time.Second

// SetGrace changes how long Run waits for stopped services to return.
func (l *Lifecycle) SetGrace(d time.Duration) { l.grace = d }

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until a signal arrives, ctx is done, or
// any service returns. The others are then stopped in reverse order and Run
// waits for all of them.
//
// Postcondition: every service has returned or the grace period has passed;
// the result is the first service error, or nil when the shutdown was clean.
func (l *Lifecycle) Run(ctx context.Context) error {
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()
	if len(services) == 0 {
		return errors.New("no services to run")
	}

	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		name string
		err  error
	}
	done := make(chan result, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		ns := ns
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			err := ns.service.Start(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				err = nil
			}
			if err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
			} else {
				l.logger.Info("service finished",
					zap.String("service", ns.name),
					zap.Duration("uptime", time.Since(svcStart)),
				)
			}
			done <- result{name: ns.name, err: err}
		}()
	}

	l.logger.Info("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var first error
	pending := len(services)
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case r := <-done:
		pending--
		if r.err != nil {
			first = fmt.Errorf("service %s: %w", r.name, r.err)
		}
		l.logger.Info("service ended, shutting down", zap.String("service", r.name))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	cancel()
	l.shutdown(services)
	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(l.grace):
		l.logger.Warn("services still running after grace period", zap.Duration("grace", l.grace))
	}
	for ; pending > 0; pending-- {
		select {
		case r := <-done:
			if r.err != nil && first == nil {
				first = fmt.Errorf("service %s: %w", r.name, r.err)
			}
		default:
			pending = 0
		}
	}

	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return first
}

func (l *Lifecycle) shutdown(services []namedService) {
	shutdownStart := time.Now()
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		l.logger.Info("stopping service", zap.String("service", ns.name))
		ns.service.Stop()
		l.logger.Debug("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped", zap.Duration("shutdown_elapsed", time.Since(shutdownStart)))
}
