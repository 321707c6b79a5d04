package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// State is the lifecycle state of a Conn: Closed → Connecting → Open → Closed.
type State int32

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Conn errors.
var (
	ErrAlreadyClosed = errors.New("connection already closed")
	ErrNotOpen       = errors.New("connection not open")
)

// Handler receives every well-formed envelope from a connection. It must
// be cheap: it runs on the read loop with no backpressure control.
type Handler func(Envelope)

// Config holds the parameters identifying one push connection.
type Config struct {
	WSURL            string        // ws(s) base URL of the backend
	Topic            string        // push topic, e.g. "prices"
	Token            string        // bearer credential; empty makes Open a no-op
	PingInterval     time.Duration // liveness probe cadence
	HandshakeTimeout time.Duration
}

// ConnStats is a point-in-time view of a connection.
type ConnStats struct {
	State     State
	Delivered int64 // well-formed envelopes handed to the handler
	Dropped   int64 // malformed frames silently discarded
}

// Conn is a single push connection for one topic.
type Conn struct {
	cfg     Config
	handler Handler
	logger  *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	state  State
	closed bool
	done   chan struct{}

	// Write serialization (heartbeat vs close frame)
	writeMu sync.Mutex

	delivered atomic.Int64
	dropped   atomic.Int64
}

// NewConn creates a connection in the Closed state.
func NewConn(cfg Config, handler Handler, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 10 * time.Second
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}

	return &Conn{
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("topic", cfg.Topic),
		done:    make(chan struct{}),
	}
}

// Open establishes the connection and starts the read and heartbeat
// loops. Without a credential it is a no-op: no connection is attempted
// and the Conn stays Closed.
func (c *Conn) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrAlreadyClosed
	}
	if c.cfg.Token == "" {
		c.mu.Unlock()
		c.logger.Debug("no credential, skipping connection")
		return nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.HandshakeTimeout,
	}

	endpoint := fmt.Sprintf("%s/ws/%s?token=%s", c.cfg.WSURL, c.cfg.Topic, url.QueryEscape(c.cfg.Token))
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()
		return fmt.Errorf("dial %s: %w", c.cfg.Topic, err)
	}

	c.mu.Lock()
	if c.closed {
		// Closed while dialing; discard the socket.
		c.mu.Unlock()
		conn.Close()
		return ErrAlreadyClosed
	}
	c.conn = conn
	c.state = StateOpen
	c.mu.Unlock()

	go c.readLoop(conn)
	go c.heartbeatLoop(conn)

	c.logger.Debug("channel connected", "url", c.cfg.WSURL)

	return nil
}

// Close tears the connection down. It is idempotent: the heartbeat timer
// is cancelled, the socket closed, and repeated calls return nil.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.state = StateClosed
	conn := c.conn
	c.mu.Unlock()

	close(c.done)

	if conn != nil {
		c.writeMu.Lock()
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		c.writeMu.Unlock()
		return conn.Close()
	}

	return nil
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed once the connection is fully torn down, locally or by
// the remote end.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Stats returns delivery counters and the current state.
func (c *Conn) Stats() ConnStats {
	return ConnStats{
		State:     c.State(),
		Delivered: c.delivered.Load(),
		Dropped:   c.dropped.Load(),
	}
}

// readLoop decodes inbound frames and hands well-formed envelopes to the
// handler. Malformed frames are dropped without surfacing an error.
func (c *Conn) readLoop(conn *websocket.Conn) {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Local teardown; expected.
			default:
				c.logger.Debug("connection lost", "error", err)
				c.Close()
			}
			return
		}

		env, err := DecodeEnvelope(data)
		if err != nil {
			c.dropped.Add(1)
			c.logger.Debug("dropping malformed frame", "reason", err)
			continue
		}

		c.delivered.Add(1)
		c.handler(env)
	}
}

// heartbeatLoop sends the application-level "ping" probe on a fixed
// interval. When the connection is no longer open the probe is skipped,
// not raised.
func (c *Conn) heartbeatLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.State() != StateOpen {
				continue
			}

			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			err := conn.WriteMessage(websocket.TextMessage, []byte("ping"))
			c.writeMu.Unlock()

			if err != nil {
				c.logger.Debug("failed to send ping", "error", err)
			}
		}
	}
}
