package store

import (
	"sort"
	"sync"

	"github.com/rturnbull/otcdesk/internal/model"
)

// TradeLogCap is the maximum number of trade records held locally.
// Older entries are evicted, not archived.
const TradeLogCap = 200

// Batch is one atomically-applied full-state refresh.
type Batch struct {
	Quotes    []model.Quote
	RFQs      []model.RFQTicket
	Trades    []model.TradeRecord
	Positions []model.PositionSnapshot
	Limits    []model.RiskLimitRule
	Alerts    []model.RiskAlert
}

// Stats is a point-in-time view of the store.
type Stats struct {
	Quotes    int
	RFQs      int
	Trades    int
	Positions int
	Limits    int
	Alerts    int

	SnapshotsApplied int64
	UpdatesApplied   int64
	UpdatesDiscarded int64 // stale-version updates dropped
}

// Store holds the desk collections.
//
// Invariants maintained across every mutation:
//   - quotes: exactly one entry per instrument id, sorted by symbol
//   - rfqs: newest first; replacement keeps the prior position
//   - trades: most recently touched first, capped at TradeLogCap
type Store struct {
	mu        sync.RWMutex
	quotes    []model.Quote
	rfqs      []model.RFQTicket
	trades    []model.TradeRecord
	positions []model.PositionSnapshot
	limits    []model.RiskLimitRule
	alerts    []model.RiskAlert

	snapshots int64
	applied   int64
	discarded int64

	changed     chan struct{}
	invalidated chan struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		changed:     make(chan struct{}, 1),
		invalidated: make(chan struct{}, 1),
	}
}

// Changed returns a coalesced notification channel that receives after
// any mutation. Renderers drain it to know when to recompute.
func (s *Store) Changed() <-chan struct{} {
	return s.changed
}

// RefreshRequests returns a coalesced channel signalled by
// InvalidatePositions. The session owning the store listens and runs a
// full reload; positions are never merged incrementally.
func (s *Store) RefreshRequests() <-chan struct{} {
	return s.invalidated
}

// ApplySnapshot wholesale-replaces every collection with the batch's
// values. It always wins over any in-flight push ordering question: the
// snapshot is the periodic correctness baseline.
func (s *Store) ApplySnapshot(b Batch) {
	quotes := append([]model.Quote(nil), b.Quotes...)
	sortQuotes(quotes)

	trades := append([]model.TradeRecord(nil), b.Trades...)
	if len(trades) > TradeLogCap {
		trades = trades[:TradeLogCap]
	}

	s.mu.Lock()
	s.quotes = quotes
	s.rfqs = append([]model.RFQTicket(nil), b.RFQs...)
	s.trades = trades
	s.positions = append([]model.PositionSnapshot(nil), b.Positions...)
	s.limits = append([]model.RiskLimitRule(nil), b.Limits...)
	s.alerts = append([]model.RiskAlert(nil), b.Alerts...)
	s.snapshots++
	s.notifyLocked()
	s.mu.Unlock()
}

// ApplyQuoteUpdate upserts a quote by instrument id. A new instrument is
// inserted and the collection re-sorted by symbol; an existing one is
// replaced in place (symbols never change in practice, but a changed
// symbol forces a re-sort to keep the display order stable). Returns
// false when the update was discarded as stale.
func (s *Store) ApplyQuoteUpdate(q model.Quote) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.quotes {
		if s.quotes[i].InstrumentID != q.InstrumentID {
			continue
		}
		if staleVersion(s.quotes[i].Version, q.Version) {
			s.discarded++
			return false
		}
		resort := s.quotes[i].Symbol != q.Symbol
		s.quotes[i] = q
		if resort {
			sortQuotes(s.quotes)
		}
		s.applied++
		s.notifyLocked()
		return true
	}

	s.quotes = append(s.quotes, q)
	sortQuotes(s.quotes)
	s.applied++
	s.notifyLocked()
	return true
}

// ApplyRFQUpdate upserts a ticket by id. New tickets are prepended (most
// recent first); existing ones are fully replaced without moving
// position. Returns false when the update was discarded as stale.
func (s *Store) ApplyRFQUpdate(t model.RFQTicket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rfqs {
		if s.rfqs[i].ID != t.ID {
			continue
		}
		if staleVersion(s.rfqs[i].Version, t.Version) {
			s.discarded++
			return false
		}
		s.rfqs[i] = t
		s.applied++
		s.notifyLocked()
		return true
	}

	s.rfqs = append([]model.RFQTicket{t}, s.rfqs...)
	s.applied++
	s.notifyLocked()
	return true
}

// ApplyTradeUpdate upserts a trade by id. The touched record moves to the
// front and the log is truncated to TradeLogCap, oldest dropped first.
// Returns false when the update was discarded as stale.
func (s *Store) ApplyTradeUpdate(tr model.TradeRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trades {
		if s.trades[i].ID != tr.ID {
			continue
		}
		if staleVersion(s.trades[i].Version, tr.Version) {
			s.discarded++
			return false
		}
		s.trades = append(s.trades[:i], s.trades[i+1:]...)
		break
	}

	s.trades = append([]model.TradeRecord{tr}, s.trades...)
	if len(s.trades) > TradeLogCap {
		s.trades = s.trades[:TradeLogCap]
	}
	s.applied++
	s.notifyLocked()
	return true
}

// InvalidatePositions signals the owner to run a full reload. Positions
// are only ever replaced wholesale by ApplySnapshot, so the store itself
// mutates nothing here.
func (s *Store) InvalidatePositions() {
	select {
	case s.invalidated <- struct{}{}:
	default:
	}
}

// Clear empties every collection. Called on logout: stale data must never
// survive into a session under a different identity. Pending coalesced
// signals are drained too, so a refresh request raised just before logout
// does not leak into the next session.
func (s *Store) Clear() {
	s.mu.Lock()
	s.quotes = nil
	s.rfqs = nil
	s.trades = nil
	s.positions = nil
	s.limits = nil
	s.alerts = nil
	select {
	case <-s.invalidated:
	default:
	}
	select {
	case <-s.changed:
	default:
	}
	s.notifyLocked()
	s.mu.Unlock()
}

// Quotes returns a copy of the quote collection, sorted by symbol.
func (s *Store) Quotes() []model.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Quote(nil), s.quotes...)
}

// RFQs returns a copy of the ticket collection, newest first.
func (s *Store) RFQs() []model.RFQTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.RFQTicket(nil), s.rfqs...)
}

// Trades returns a copy of the trade log, most recently touched first.
func (s *Store) Trades() []model.TradeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TradeRecord(nil), s.trades...)
}

// Positions returns a copy of the inventory collection.
func (s *Store) Positions() []model.PositionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PositionSnapshot(nil), s.positions...)
}

// Limits returns a copy of the risk limit catalog.
func (s *Store) Limits() []model.RiskLimitRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.RiskLimitRule(nil), s.limits...)
}

// Alerts returns a copy of the current risk alerts.
func (s *Store) Alerts() []model.RiskAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.RiskAlert(nil), s.alerts...)
}

// Stats returns collection sizes and merge counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Quotes:           len(s.quotes),
		RFQs:             len(s.rfqs),
		Trades:           len(s.trades),
		Positions:        len(s.positions),
		Limits:           len(s.limits),
		Alerts:           len(s.alerts),
		SnapshotsApplied: s.snapshots,
		UpdatesApplied:   s.applied,
		UpdatesDiscarded: s.discarded,
	}
}

// notifyLocked signals the changed channel (non-blocking, coalesced).
// Caller must hold the write lock.
func (s *Store) notifyLocked() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// staleVersion reports whether an incoming server revision is strictly
// older than the held one. A zero on either side falls back to
// arrival-order replacement.
func staleVersion(held, incoming int64) bool {
	return held != 0 && incoming != 0 && incoming < held
}

func sortQuotes(quotes []model.Quote) {
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Symbol < quotes[j].Symbol
	})
}
