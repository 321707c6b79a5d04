package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rturnbull/otcdesk/internal/projection"
	"github.com/rturnbull/otcdesk/internal/session"
	"github.com/rturnbull/otcdesk/internal/store"
)

// renderLoop writes a compact desk summary whenever the store changes,
// plus once a second so quote countdowns tick down between pushes.
func renderLoop(ctx context.Context, sess *session.Session, st *store.Store, w io.Writer) {
	clock := time.NewTicker(time.Second)
	defer clock.Stop()

	render(sess, st, w, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-st.Changed():
		case <-clock.C:
		}
		render(sess, st, w, time.Now())
	}
}

func render(sess *session.Session, st *store.Store, w io.Writer, now time.Time) {
	quotes := st.Quotes()
	rfqs := st.RFQs()
	positions := st.Positions()
	alerts := st.Alerts()

	inventory := projection.InventoryBySymbol(positions)
	total := projection.TotalExposure(inventory)

	fmt.Fprintf(w, "\n=== %s | quotes %d | trades %d | alerts %d | desk exposure %s ===\n",
		now.Format("15:04:05"), len(quotes), st.Stats().Trades, len(alerts), usd(total))

	if notice := sess.Notice(); notice != "" {
		fmt.Fprintf(w, "!! %s\n", notice)
	}

	for _, q := range quotes {
		fmt.Fprintf(w, "  %-10s bid %10.4f ask %10.4f mid %10.4f spread %6.1fbps\n",
			q.Symbol, q.Bid, q.Ask, q.Mid, q.SpreadBPS)
	}

	quoted := projection.QuotedTickets(rfqs)
	if len(quoted) > 0 {
		fmt.Fprintln(w, "  -- active rfqs --")
		for _, t := range quoted {
			left := projection.Remaining(t, now)
			marker := " "
			if projection.Executable(t, now) {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %-12s %-10s %-4s %10.2f @ %10.4f  %3ds\n",
				marker, t.ClientName, t.Symbol, t.Side, t.Size, t.QuotedPrice, left)
		}
	}

	if len(inventory) > 0 {
		fmt.Fprintln(w, "  -- inventory --")
		for _, row := range inventory {
			fmt.Fprintf(w, "    %-10s %s\n", row.Symbol, usd(row.ExposureUSD))
		}
	}

	for _, a := range alerts {
		fmt.Fprintf(w, "  [%s] %s %s exposure %s (soft %s hard %s)\n",
			a.Severity, a.ClientName, a.Symbol,
			usd(a.ExposureUSD), usd(a.SoftLimitUSD), usd(a.HardLimitUSD))
	}
}

func usd(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}
