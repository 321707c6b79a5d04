package main

import (
	"strings"
	"testing"
	"time"

	"github.com/rturnbull/otcdesk/internal/model"
	"github.com/rturnbull/otcdesk/internal/session"
	"github.com/rturnbull/otcdesk/internal/snapshot"
	"github.com/rturnbull/otcdesk/internal/store"
)

func TestRenderSummary(t *testing.T) {
	st := store.New()
	now := time.Now()

	st.ApplySnapshot(store.Batch{
		Quotes: []model.Quote{
			{InstrumentID: 1, Symbol: "EURUSD", Bid: 1.0830, Ask: 1.0838, Mid: 1.0834, SpreadBPS: 7.4},
		},
		RFQs: []model.RFQTicket{
			{ID: "r1", ClientName: "Alpha Cap", Symbol: "EURUSD", Side: model.SideBuy,
				Size: 250000, QuotedPrice: 1.0834, Status: model.RFQQuoted,
				QuoteExpiry: now.Add(12 * time.Second)},
		},
		Positions: []model.PositionSnapshot{
			{ClientID: 1, Symbol: "EURUSD", ExposureUSD: -500},
		},
		Alerts: []model.RiskAlert{
			{ClientName: "Alpha Cap", Symbol: "EURUSD", ExposureUSD: 900000,
				SoftLimitUSD: 500000, HardLimitUSD: 1000000, Severity: model.SeveritySoft},
		},
	})

	sess := session.New(session.DefaultConfig(), nil, &snapshot.Loader{}, st, nil)

	var buf strings.Builder
	render(sess, st, &buf, now)
	out := buf.String()

	for _, want := range []string{
		"EURUSD",
		"active rfqs",
		"Alpha Cap",
		"inventory",
		"$500",
		"[soft]",
		"$900000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}
