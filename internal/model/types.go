package model

import "time"

// Side is the direction of an RFQ or trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// RFQStatus is the lifecycle state of an RFQ ticket.
// Transitions happen server-side: pending → quoted → {accepted, rejected, expired}.
type RFQStatus string

const (
	RFQPending  RFQStatus = "pending"
	RFQQuoted   RFQStatus = "quoted"
	RFQAccepted RFQStatus = "accepted"
	RFQRejected RFQStatus = "rejected"
	RFQExpired  RFQStatus = "expired"
)

// User identifies the authenticated desk operator.
type User struct {
	ID       int    // Backend user ID
	Username string // Login name
	FullName string // Display name
	Role     string // "trader", "risk", "admin" or "viewer"
}

// Quote is the live market picture for one instrument.
type Quote struct {
	InstrumentID int     // Primary key within the quote collection
	Symbol       string  // Instrument symbol (display sort key)
	Bid          float64 // Best bid
	Ask          float64 // Best ask
	Mid          float64 // Midpoint
	SpreadBPS    float64 // Spread in basis points
	RollingVWAP  float64 // Rolling volume-weighted average price
	Volatility   float64 // Short-window (5m) volatility
	Version      int64   // Server revision, 0 if unstamped
	TS           time.Time
}

// RFQTicket is a client-initiated pricing request with a time-bounded
// executable quote. The desk never mutates a ticket locally; it only
// replaces the whole record when the server sends an update.
type RFQTicket struct {
	ID           string // Opaque server-assigned id, unique for the system lifetime
	ClientID     int
	ClientName   string
	InstrumentID int
	Symbol       string
	Side         Side
	Size         float64
	QuotedPrice  float64
	QuoteExpiry  time.Time // Past this instant the ticket is unexecutable regardless of status
	Status       RFQStatus
	Version      int64 // Server revision, 0 if unstamped
	CreatedAt    time.Time
}

// TradeRecord is an executed trade. IDs are assigned monotonically by the
// server; the local blotter keeps only the 200 most recently touched records.
type TradeRecord struct {
	ID           int64
	ClientID     int
	ClientName   string
	InstrumentID int
	Symbol       string
	Side         Side
	Size         float64
	Price        float64
	NotionalUSD  float64
	Version      int64 // Server revision, 0 if unstamped
	ExecutedAt   time.Time
}

// PositionSnapshot is the inventory for one (client, instrument) pair.
// Positions are only ever replaced wholesale by a snapshot read; the
// backend pushes no incremental deltas for them.
type PositionSnapshot struct {
	ClientID     int
	ClientName   string
	InstrumentID int
	Symbol       string
	NetSize      float64
	AvgPrice     float64
	ExposureUSD  float64 // Signed USD notional
	UpdatedAt    time.Time
}

// RiskLimitRule scopes soft/hard USD thresholds to an optional client
// and/or instrument. A zero ClientID or InstrumentID means the rule is
// unscoped for that dimension. The desk uses the catalog only as the
// source of known clients and instruments, not for enforcement.
type RiskLimitRule struct {
	ID                 int
	ClientID           int    // 0 = any client
	ClientName         string // empty when unscoped
	InstrumentID       int    // 0 = any instrument
	Symbol             string // empty when unscoped
	SoftLimitUSD       float64
	HardLimitUSD       float64
	LeverageLimit      float64
	RequiresSupervisor bool
	Active             bool
}

// AlertSeverity tags a risk alert by which threshold it breaches.
type AlertSeverity string

const (
	SeveritySoft AlertSeverity = "soft"
	SeverityHard AlertSeverity = "hard"
)

// RiskAlert is an ephemeral server-derived breach notice for one
// (client, instrument) pair. Fully replaced on every snapshot.
type RiskAlert struct {
	ClientID     int
	ClientName   string
	InstrumentID int
	Symbol       string
	ExposureUSD  float64
	SoftLimitUSD float64
	HardLimitUSD float64
	Severity     AlertSeverity
}

// ClientAnalytics is the per-client performance record served by the
// backend. Renderers consume it directly; it never enters the store.
type ClientAnalytics struct {
	ClientID            int
	ClientName          string
	MarkToMarketPNL     float64
	TotalVolumeUSD      float64
	AvgSpreadCaptureBPS float64
	AvgRFQResponseSecs  float64
	TradeCount          int
}

// OptionItem is a derived (id, display name) pair used to populate
// selection controls. Computed from the risk limit catalog, never
// transmitted.
type OptionItem struct {
	ID   int
	Name string
}
