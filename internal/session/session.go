package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rturnbull/otcdesk/internal/api"
	"github.com/rturnbull/otcdesk/internal/channel"
	"github.com/rturnbull/otcdesk/internal/model"
	"github.com/rturnbull/otcdesk/internal/snapshot"
	"github.com/rturnbull/otcdesk/internal/store"
)

// Topics the backend pushes, one channel connection each.
var Topics = []string{"prices", "rfq_updates", "trade_updates", "positions"}

// Config holds session configuration.
type Config struct {
	WSURL            string
	RefreshInterval  time.Duration // periodic full-snapshot cadence (default: 30s)
	PingInterval     time.Duration
	HandshakeTimeout time.Duration
	Reconnect        channel.SupervisorConfig
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 30 * time.Second,
		PingInterval:    10 * time.Second,
		Reconnect:       channel.DefaultSupervisorConfig(),
	}
}

// Session is the authenticated desk lifecycle: token, refresh loop and
// push channels. A zero session is logged out; Login and Logout may be
// called repeatedly.
type Session struct {
	cfg    Config
	client *api.Client
	loader *snapshot.Loader
	store  *store.Store
	logger *slog.Logger

	mu          sync.Mutex
	user        model.User
	loggedIn    bool
	generation  uint64
	notice      string
	supervisors []*channel.Supervisor
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// New creates a logged-out session.
func New(cfg Config, client *api.Client, loader *snapshot.Loader, st *store.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultConfig().PingInterval
	}
	if cfg.Reconnect.BaseDelay <= 0 {
		cfg.Reconnect = channel.DefaultSupervisorConfig()
	}
	return &Session{
		cfg:    cfg,
		client: client,
		loader: loader,
		store:  st,
		logger: logger,
	}
}

// Login authenticates, hydrates the store and brings up one supervised
// channel per topic. The initial hydrate must succeed: a session never
// starts on partial state.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.loggedIn {
		s.mu.Unlock()
		return fmt.Errorf("already logged in as %q", s.user.Username)
	}
	s.mu.Unlock()

	user, err := s.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	batch, err := s.loader.LoadAll(ctx)
	if err != nil {
		s.client.SetToken("")
		return fmt.Errorf("initial hydrate: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ApplySnapshot(batch)
	s.user = user
	s.loggedIn = true
	s.notice = ""
	gen := s.generation

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	token := s.client.Token()
	for _, topic := range Topics {
		sup := channel.NewSupervisor(channel.Config{
			WSURL:            s.cfg.WSURL,
			Topic:            topic,
			Token:            token,
			PingInterval:     s.cfg.PingInterval,
			HandshakeTimeout: s.cfg.HandshakeTimeout,
		}, s.cfg.Reconnect, s.dispatch, s.logger)
		if err := sup.Start(runCtx); err != nil {
			s.logger.Error("channel supervisor start failed", "topic", topic, "error", err)
			continue
		}
		s.supervisors = append(s.supervisors, sup)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refreshLoop(runCtx, gen)
	}()

	s.logger.Info("session started",
		"username", user.Username,
		"channels", len(s.supervisors),
	)
	return nil
}

// Logout tears the whole session down: channels stop, the refresh loop
// exits, in-flight snapshot results are discarded and every collection
// is cleared. There is no partial logout.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if !s.loggedIn {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	s.loggedIn = false
	s.user = model.User{}
	s.notice = ""
	cancel := s.cancel
	s.cancel = nil
	supervisors := s.supervisors
	s.supervisors = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, sup := range supervisors {
		if err := sup.Stop(ctx); err != nil {
			s.logger.Warn("channel stop timed out", "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.client.SetToken("")
	s.store.Clear()
	s.logger.Info("session ended")
	return nil
}

// RefreshAll loads one full snapshot and applies it, unless the session
// was torn down while the load was in flight.
func (s *Session) RefreshAll(ctx context.Context) error {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	return s.refresh(ctx, gen)
}

// CreateRFQ submits a new request-for-quote and then refreshes every
// collection. The store is never edited optimistically.
func (s *Session) CreateRFQ(ctx context.Context, req api.CreateRFQRequest) (model.RFQTicket, error) {
	ticket, err := s.client.CreateRFQ(ctx, req)
	if err != nil {
		s.setNotice(fmt.Sprintf("create rfq failed: %v", err))
		return model.RFQTicket{}, err
	}

	if err := s.RefreshAll(ctx); err != nil {
		s.logger.Warn("refresh after create rfq failed", "error", err)
	}
	return ticket, nil
}

// ExecuteTrade executes a quoted RFQ and then refreshes every
// collection.
func (s *Session) ExecuteTrade(ctx context.Context, req api.ExecuteTradeRequest) (model.TradeRecord, error) {
	trade, err := s.client.ExecuteTrade(ctx, req)
	if err != nil {
		s.setNotice(fmt.Sprintf("execute trade failed: %v", err))
		return model.TradeRecord{}, err
	}

	if err := s.RefreshAll(ctx); err != nil {
		s.logger.Warn("refresh after trade failed", "error", err)
	}
	return trade, nil
}

// ExportTradesCSV streams the blotter export to w.
func (s *Session) ExportTradesCSV(ctx context.Context, w io.Writer) error {
	return s.client.ExportTradesCSV(ctx, w)
}

// ClientAnalytics fetches the analytics record for one client.
func (s *Session) ClientAnalytics(ctx context.Context, clientID int) (model.ClientAnalytics, error) {
	return s.client.GetClientAnalytics(ctx, clientID)
}

// User returns the authenticated identity, zero when logged out.
func (s *Session) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// LoggedIn reports whether a session is active.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Notice returns the current failure banner, empty when all is well.
// One slot only: a newer failure replaces an older one.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// ClearNotice dismisses the failure banner.
func (s *Session) ClearNotice() {
	s.mu.Lock()
	s.notice = ""
	s.mu.Unlock()
}

// ChannelStates reports the per-topic connection state for the status
// endpoint.
func (s *Session) ChannelStates() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[string]string, len(s.supervisors))
	for i, sup := range s.supervisors {
		if i < len(Topics) {
			states[Topics[i]] = sup.State().String()
		}
	}
	return states
}

func (s *Session) setNotice(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

// refreshLoop runs one immediate-then-periodic full refresh and serves
// position invalidation requests coming off the push channels.
func (s *Session) refreshLoop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-s.store.RefreshRequests():
		}

		if err := s.refresh(ctx, gen); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("periodic refresh failed", "error", err)
		}
	}
}

// refresh loads one batch and applies it if the session generation is
// still current. A logout while the load was in flight makes the result
// worthless; it is dropped, never merged.
func (s *Session) refresh(ctx context.Context, gen uint64) error {
	batch, err := s.loader.LoadAll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.setNotice(fmt.Sprintf("refresh failed: %v", err))
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || !s.loggedIn {
		s.logger.Debug("discarding snapshot from ended session")
		return nil
	}
	s.store.ApplySnapshot(batch)
	s.notice = ""
	return nil
}
