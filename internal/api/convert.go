package api

import (
	"time"

	"github.com/rturnbull/otcdesk/internal/model"
)

// ParseTimestamp parses an RFC 3339 timestamp, tolerating the backend's
// zone-less isoformat variant (treated as UTC). Returns the zero time for
// empty or invalid input.
func ParseTimestamp(iso string) time.Time {
	if iso == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		// Try without timezone
		t, err = time.Parse("2006-01-02T15:04:05.999999999", iso)
		if err != nil {
			return time.Time{}
		}
		t = t.UTC()
	}

	return t
}

// ToModel converts a WireUser to model.User.
func (u *WireUser) ToModel() model.User {
	return model.User{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// ToModel converts a WireQuote to model.Quote.
func (q *WireQuote) ToModel() model.Quote {
	return model.Quote{
		InstrumentID: q.InstrumentID,
		Symbol:       q.Symbol,
		Bid:          q.Bid,
		Ask:          q.Ask,
		Mid:          q.Mid,
		SpreadBPS:    q.SpreadBPS,
		RollingVWAP:  q.RollingVWAP,
		Volatility:   q.Volatility5m,
		Version:      q.Version,
		TS:           ParseTimestamp(q.TS),
	}
}

// ToModel converts a WireRFQ to model.RFQTicket.
func (r *WireRFQ) ToModel() model.RFQTicket {
	return model.RFQTicket{
		ID:           r.ID,
		ClientID:     r.ClientID,
		ClientName:   r.ClientName,
		InstrumentID: r.InstrumentID,
		Symbol:       r.Symbol,
		Side:         model.Side(r.Side),
		Size:         r.Size,
		QuotedPrice:  r.QuotedPrice,
		QuoteExpiry:  ParseTimestamp(r.QuoteExpiry),
		Status:       model.RFQStatus(r.Status),
		Version:      r.Version,
		CreatedAt:    ParseTimestamp(r.CreatedAt),
	}
}

// ToModel converts a WireTrade to model.TradeRecord.
func (t *WireTrade) ToModel() model.TradeRecord {
	return model.TradeRecord{
		ID:           t.ID,
		ClientID:     t.ClientID,
		ClientName:   t.ClientName,
		InstrumentID: t.InstrumentID,
		Symbol:       t.Symbol,
		Side:         model.Side(t.Side),
		Size:         t.Size,
		Price:        t.Price,
		NotionalUSD:  t.NotionalUSD,
		Version:      t.Version,
		ExecutedAt:   ParseTimestamp(t.Timestamp),
	}
}

// ToModel converts a WirePosition to model.PositionSnapshot.
func (p *WirePosition) ToModel() model.PositionSnapshot {
	return model.PositionSnapshot{
		ClientID:     p.ClientID,
		ClientName:   p.ClientName,
		InstrumentID: p.InstrumentID,
		Symbol:       p.Symbol,
		NetSize:      p.NetSize,
		AvgPrice:     p.AvgPrice,
		ExposureUSD:  p.ExposureUSD,
		UpdatedAt:    ParseTimestamp(p.UpdatedAt),
	}
}

// ToModel converts a WireRiskLimit to model.RiskLimitRule. Null scopes
// collapse to the zero values the model uses for "unscoped".
func (l *WireRiskLimit) ToModel() model.RiskLimitRule {
	rule := model.RiskLimitRule{
		ID:                 l.ID,
		SoftLimitUSD:       l.SoftLimitUSD,
		HardLimitUSD:       l.HardLimitUSD,
		LeverageLimit:      l.LeverageLimit,
		RequiresSupervisor: l.RequiresSupervisor,
		Active:             l.Active,
	}
	if l.ClientID != nil {
		rule.ClientID = *l.ClientID
	}
	if l.ClientName != nil {
		rule.ClientName = *l.ClientName
	}
	if l.InstrumentID != nil {
		rule.InstrumentID = *l.InstrumentID
	}
	if l.Symbol != nil {
		rule.Symbol = *l.Symbol
	}
	return rule
}

// ToModel converts a WireRiskAlert to model.RiskAlert.
func (a *WireRiskAlert) ToModel() model.RiskAlert {
	return model.RiskAlert{
		ClientID:     a.ClientID,
		ClientName:   a.ClientName,
		InstrumentID: a.InstrumentID,
		Symbol:       a.Symbol,
		ExposureUSD:  a.ExposureUSD,
		SoftLimitUSD: a.SoftLimitUSD,
		HardLimitUSD: a.HardLimitUSD,
		Severity:     model.AlertSeverity(a.Severity),
	}
}

// ToModel converts a WireClientAnalytics to model.ClientAnalytics.
func (a *WireClientAnalytics) ToModel() model.ClientAnalytics {
	return model.ClientAnalytics{
		ClientID:            a.ClientID,
		ClientName:          a.ClientName,
		MarkToMarketPNL:     a.MarkToMarketPNL,
		TotalVolumeUSD:      a.TotalVolumeUSD,
		AvgSpreadCaptureBPS: a.AvgSpreadCaptureBPS,
		AvgRFQResponseSecs:  a.AvgRFQResponseSecs,
		TradeCount:          a.TradeCount,
	}
}
