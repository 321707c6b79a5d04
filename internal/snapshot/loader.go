package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rturnbull/otcdesk/internal/api"
	"github.com/rturnbull/otcdesk/internal/store"
)

// Config holds loader configuration.
type Config struct {
	Timeout time.Duration // budget for one whole batch (default: 15s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 15 * time.Second,
	}
}

// Loader fetches full-state batches from the desk backend.
type Loader struct {
	cfg    Config
	client *api.Client
	logger *slog.Logger
}

// New creates a new Loader.
func New(cfg Config, client *api.Client, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Loader{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// LoadAll fetches every collection concurrently and returns one batch.
// The first failing read cancels the rest and fails the whole call; a
// partial result is never returned.
func (l *Loader) LoadAll(ctx context.Context) (store.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	start := time.Now()

	var batch store.Batch
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		quotes, err := l.client.GetCurrentPrices(ctx)
		if err != nil {
			return err
		}
		batch.Quotes = quotes
		return nil
	})
	g.Go(func() error {
		rfqs, err := l.client.GetRFQs(ctx)
		if err != nil {
			return err
		}
		batch.RFQs = rfqs
		return nil
	})
	g.Go(func() error {
		trades, err := l.client.GetTrades(ctx)
		if err != nil {
			return err
		}
		batch.Trades = trades
		return nil
	})
	g.Go(func() error {
		positions, err := l.client.GetPositions(ctx)
		if err != nil {
			return err
		}
		batch.Positions = positions
		return nil
	})
	g.Go(func() error {
		limits, err := l.client.GetLimits(ctx)
		if err != nil {
			return err
		}
		batch.Limits = limits
		return nil
	})
	g.Go(func() error {
		alerts, err := l.client.GetRiskAlerts(ctx)
		if err != nil {
			return err
		}
		batch.Alerts = alerts
		return nil
	})

	if err := g.Wait(); err != nil {
		return store.Batch{}, fmt.Errorf("load snapshot: %w", err)
	}

	l.logger.Debug("snapshot loaded",
		"quotes", len(batch.Quotes),
		"rfqs", len(batch.RFQs),
		"trades", len(batch.Trades),
		"positions", len(batch.Positions),
		"duration", time.Since(start),
	)

	return batch, nil
}
