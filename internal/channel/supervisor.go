package channel

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// SupervisorConfig holds reconnect policy.
type SupervisorConfig struct {
	BaseDelay  time.Duration // first retry delay
	MaxDelay   time.Duration // backoff cap
	ResetAfter time.Duration // uptime after which backoff resets to BaseDelay
}

// DefaultSupervisorConfig returns sensible defaults.
func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		ResetAfter: 45 * time.Second,
	}
}

// Supervisor keeps one topic connection alive. It observes the Closed
// state and re-opens with exponential backoff and jitter; the connection
// itself never reconnects.
type Supervisor struct {
	connCfg Config
	cfg     SupervisorConfig
	handler Handler
	logger  *slog.Logger

	mu   sync.Mutex
	conn *Conn

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSupervisor creates a supervisor for one (endpoint, topic, credential)
// triple.
func NewSupervisor(connCfg Config, cfg SupervisorConfig, handler Handler, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Supervisor{
		connCfg: connCfg,
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("topic", connCfg.Topic),
	}
}

// Start begins supervising. Without a credential it does nothing, the
// same no-op contract as Conn.Open.
func (s *Supervisor) Start(ctx context.Context) error {
	if s.connCfg.Token == "" {
		s.logger.Debug("no credential, supervisor idle")
		return nil
	}

	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()

	return nil
}

// Stop tears down the current connection and waits for the supervise
// loop to exit.
func (s *Supervisor) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State reports the state of the current connection, Closed when none
// exists yet.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return StateClosed
	}
	return s.conn.State()
}

// Stats reports the current connection's counters.
func (s *Supervisor) Stats() ConnStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ConnStats{State: StateClosed}
	}
	return s.conn.Stats()
}

// run opens connections until the context is cancelled. Backoff doubles
// on every failed cycle, capped at MaxDelay, and resets to BaseDelay
// after a connection stays up for ResetAfter.
func (s *Supervisor) run(ctx context.Context) {
	delay := s.cfg.BaseDelay

	for {
		conn := NewConn(s.connCfg, s.handler, s.logger)

		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		openedAt := time.Now()
		err := conn.Open(ctx)
		if err == nil {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-conn.Done():
				// Remote teardown; fall through to reconnect.
			}

			if time.Since(openedAt) >= s.cfg.ResetAfter {
				delay = s.cfg.BaseDelay
			} else {
				delay = nextDelay(delay, s.cfg.MaxDelay)
			}
		} else {
			conn.Close()
			delay = nextDelay(delay, s.cfg.MaxDelay)
		}

		if ctx.Err() != nil {
			return
		}

		wait := jitter(delay)
		s.logger.Info("reconnecting channel",
			"wait", wait,
			"last_error", err,
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// nextDelay doubles the delay up to the cap.
func nextDelay(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		next = max
	}
	return next
}

// jitter spreads a delay over (0.5 to 1.5) of its value.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d/2 + time.Duration(rand.Int63n(int64(d)))
}
