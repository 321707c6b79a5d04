package projection

import (
	"testing"
	"time"

	"github.com/rturnbull/otcdesk/internal/model"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"fifteen seconds out", now.Add(15 * time.Second), 15},
		{"fractional second floors", now.Add(15*time.Second + 900*time.Millisecond), 15},
		{"exactly now", now, 0},
		{"already expired", now.Add(-30 * time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := model.RFQTicket{QuoteExpiry: tt.expiry}
			if got := Remaining(ticket, now); got != tt.want {
				t.Errorf("Remaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExecutableFlipsAtExpiry(t *testing.T) {
	now := time.Now()
	ticket := model.RFQTicket{Status: model.RFQQuoted, QuoteExpiry: now.Add(10 * time.Second)}

	if !Executable(ticket, now) {
		t.Error("quoted ticket with time left should be executable")
	}
	if Executable(ticket, now.Add(10*time.Second)) {
		t.Error("ticket at expiry instant should not be executable")
	}

	pending := ticket
	pending.Status = model.RFQPending
	if Executable(pending, now) {
		t.Error("non-quoted ticket should never be executable")
	}
}

func TestCountdowns(t *testing.T) {
	now := time.Now()
	tickets := []model.RFQTicket{
		{ID: "a", Status: model.RFQQuoted, QuoteExpiry: now.Add(5 * time.Second)},
		{ID: "b", Status: model.RFQExpired, QuoteExpiry: now.Add(-time.Minute)},
	}

	got := Countdowns(tickets, now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Remaining != 5 || !got[0].Executable {
		t.Errorf("countdown a = %+v, want 5s executable", got[0])
	}
	if got[1].Remaining != 0 || got[1].Executable {
		t.Errorf("countdown b = %+v, want 0s not executable", got[1])
	}
}

func TestQuotedTickets(t *testing.T) {
	tickets := []model.RFQTicket{
		{ID: "a", Status: model.RFQQuoted},
		{ID: "b", Status: model.RFQPending},
		{ID: "c", Status: model.RFQQuoted},
	}

	got := QuotedTickets(tickets)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("QuotedTickets = %+v, want a and c in order", got)
	}
}

func TestClientOptionsFromLimits(t *testing.T) {
	limits := []model.RiskLimitRule{
		{ClientID: 2, ClientName: "Zenith Fund"},
		{ClientID: 1, ClientName: "Alpha Cap"},
		{ClientID: 0, ClientName: ""}, // unscoped, skipped
		{ClientID: 2, ClientName: "Zenith Capital"}, // rename, last wins
		{InstrumentID: 7, Symbol: "EURUSD"},         // instrument-only rule
	}

	got := ClientOptions(limits)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Alpha Cap" || got[1].Name != "Zenith Capital" {
		t.Errorf("ClientOptions = %+v, want alphabetical with last name winning", got)
	}
}

func TestInstrumentOptionsFromLimits(t *testing.T) {
	limits := []model.RiskLimitRule{
		{InstrumentID: 3, Symbol: "USDJPY"},
		{InstrumentID: 1, Symbol: "EURUSD"},
		{InstrumentID: 1, Symbol: "EURUSD"},
		{ClientID: 9, ClientName: "Desk A"},
	}

	got := InstrumentOptions(limits)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "EURUSD" || got[1].Name != "USDJPY" {
		t.Errorf("InstrumentOptions = %+v, want EURUSD then USDJPY", got)
	}
}

func TestExposureMatrix(t *testing.T) {
	clients := []model.OptionItem{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	instruments := []model.OptionItem{{ID: 10, Name: "EURUSD"}}
	positions := []model.PositionSnapshot{
		{ClientID: 1, InstrumentID: 10, ExposureUSD: -400},
		{ClientID: 2, InstrumentID: 10, ExposureUSD: 800},
	}

	cells := ExposureMatrix(positions, clients, instruments)
	if len(cells) != 2 {
		t.Fatalf("len = %d, want 2", len(cells))
	}
	if cells[0].ExposureUSD != 400 {
		t.Errorf("cell 0 exposure = %v, want abs 400", cells[0].ExposureUSD)
	}
	if cells[0].Intensity != 0.5 || cells[1].Intensity != 1.0 {
		t.Errorf("intensities = %v, %v, want 0.5 and 1.0", cells[0].Intensity, cells[1].Intensity)
	}
}

func TestExposureMatrixEmptyPositions(t *testing.T) {
	clients := []model.OptionItem{{ID: 1, Name: "A"}}
	instruments := []model.OptionItem{{ID: 10, Name: "EURUSD"}, {ID: 11, Name: "USDJPY"}}

	cells := ExposureMatrix(nil, clients, instruments)
	if len(cells) != 2 {
		t.Fatalf("len = %d, want full cross product of 2", len(cells))
	}
	for _, c := range cells {
		if c.ExposureUSD != 0 || c.Intensity != 0 {
			t.Errorf("cell = %+v, want zero exposure and intensity", c)
		}
	}
}

func TestInventoryBySymbol(t *testing.T) {
	positions := []model.PositionSnapshot{
		{ClientID: 1, Symbol: "USDJPY", ExposureUSD: 300},
		{ClientID: 2, Symbol: "EURUSD", ExposureUSD: -500},
		{ClientID: 3, Symbol: "EURUSD", ExposureUSD: 200},
	}

	rows := InventoryBySymbol(positions)
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].Symbol != "EURUSD" || rows[0].ExposureUSD != 700 {
		t.Errorf("row 0 = %+v, want EURUSD 700 (sum of abs)", rows[0])
	}
	if rows[1].Symbol != "USDJPY" || rows[1].ExposureUSD != 300 {
		t.Errorf("row 1 = %+v, want USDJPY 300", rows[1])
	}

	if total := TotalExposure(rows); total != 1000 {
		t.Errorf("TotalExposure = %v, want 1000", total)
	}
}
