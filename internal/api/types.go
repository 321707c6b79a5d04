package api

// Wire types mirror the desk backend's JSON shapes. Conversions to the
// internal model live in convert.go.

// WireUser is the authenticated operator record.
type WireUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// AuthResponse is returned by POST /api/auth/login.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        WireUser `json:"user"`
}

// WireQuote is one entry of GET /api/pricing/current and the payload of
// the prices push topic.
type WireQuote struct {
	InstrumentID int     `json:"instrument_id"`
	Symbol       string  `json:"instrument_symbol"`
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	Mid          float64 `json:"mid"`
	SpreadBPS    float64 `json:"spread_bps"`
	RollingVWAP  float64 `json:"rolling_vwap"`
	Volatility5m float64 `json:"volatility_5m"`
	Version      int64   `json:"version,omitempty"`
	TS           string  `json:"ts"`
}

// WireRFQ is one entry of GET /api/rfq and the payload of the rfq_updates
// push topic.
type WireRFQ struct {
	ID           string  `json:"id"`
	ClientID     int     `json:"client_id"`
	ClientName   string  `json:"client_name"`
	InstrumentID int     `json:"instrument_id"`
	Symbol       string  `json:"instrument_symbol"`
	Side         string  `json:"side"`
	Size         float64 `json:"size"`
	QuotedPrice  float64 `json:"quoted_price"`
	QuoteExpiry  string  `json:"quote_expiry"`
	Status       string  `json:"status"`
	Version      int64   `json:"version,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// WireTrade is one entry of GET /api/trades items and the payload of the
// trade_updates push topic.
type WireTrade struct {
	ID           int64   `json:"id"`
	ClientID     int     `json:"client_id"`
	ClientName   string  `json:"client_name"`
	InstrumentID int     `json:"instrument_id"`
	Symbol       string  `json:"instrument_symbol"`
	Side         string  `json:"side"`
	Size         float64 `json:"size"`
	Price        float64 `json:"price"`
	NotionalUSD  float64 `json:"notional_usd"`
	Version      int64   `json:"version,omitempty"`
	Timestamp    string  `json:"timestamp"`
}

// TradesPage is the paginated response of GET /api/trades.
type TradesPage struct {
	Items    []WireTrade `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int         `json:"total"`
}

// WirePosition is one entry of GET /api/positions.
type WirePosition struct {
	ClientID     int     `json:"client_id"`
	ClientName   string  `json:"client_name"`
	InstrumentID int     `json:"instrument_id"`
	Symbol       string  `json:"instrument_symbol"`
	NetSize      float64 `json:"net_size"`
	AvgPrice     float64 `json:"avg_price"`
	ExposureUSD  float64 `json:"usd_exposure"`
	UpdatedAt    string  `json:"updated_at"`
}

// WireRiskLimit is one entry of GET /api/limits. Client and instrument
// scopes are nullable on the wire.
type WireRiskLimit struct {
	ID                 int     `json:"id"`
	ClientID           *int    `json:"client_id"`
	ClientName         *string `json:"client_name"`
	InstrumentID       *int    `json:"instrument_id"`
	Symbol             *string `json:"instrument_symbol"`
	SoftLimitUSD       float64 `json:"soft_limit_usd"`
	HardLimitUSD       float64 `json:"hard_limit_usd"`
	LeverageLimit      float64 `json:"leverage_limit"`
	RequiresSupervisor bool    `json:"requires_supervisor"`
	Active             bool    `json:"active"`
}

// WireRiskAlert is one entry of GET /api/limits/alerts.
type WireRiskAlert struct {
	ClientID     int     `json:"client_id"`
	ClientName   string  `json:"client_name"`
	InstrumentID int     `json:"instrument_id"`
	Symbol       string  `json:"instrument_symbol"`
	ExposureUSD  float64 `json:"exposure_usd"`
	SoftLimitUSD float64 `json:"soft_limit_usd"`
	HardLimitUSD float64 `json:"hard_limit_usd"`
	Severity     string  `json:"severity"`
}

// AlertsResponse wraps GET /api/limits/alerts.
type AlertsResponse struct {
	Alerts []WireRiskAlert `json:"alerts"`
}

// WireClientAnalytics is the response of GET /api/clients/{id}/analytics.
type WireClientAnalytics struct {
	ClientID            int     `json:"client_id"`
	ClientName          string  `json:"client_name"`
	MarkToMarketPNL     float64 `json:"mark_to_market_pnl"`
	TotalVolumeUSD      float64 `json:"total_volume_usd"`
	AvgSpreadCaptureBPS float64 `json:"avg_spread_capture_bps"`
	AvgRFQResponseSecs  float64 `json:"avg_rfq_response_seconds"`
	TradeCount          int     `json:"trade_count"`
}

// CreateRFQRequest is the body of POST /api/rfq.
type CreateRFQRequest struct {
	ClientID      int     `json:"client_id"`
	InstrumentID  int     `json:"instrument_id"`
	Side          string  `json:"side"`
	Size          float64 `json:"size"`
	ExpirySeconds int     `json:"expiry_seconds"`
}

// ExecuteTradeRequest is the body of POST /api/trades.
type ExecuteTradeRequest struct {
	RFQID        string  `json:"rfq_id"`
	ClientID     int     `json:"client_id"`
	InstrumentID int     `json:"instrument_id"`
	Side         string  `json:"side"`
	Size         float64 `json:"size"`
	Price        float64 `json:"price"`
}
