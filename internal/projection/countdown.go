package projection

import (
	"time"

	"github.com/rturnbull/otcdesk/internal/model"
)

// Countdown is the live view of one RFQ ticket's remaining quote life.
type Countdown struct {
	ID         string
	Remaining  int  // whole seconds until quote expiry, floored at 0
	Executable bool // status is quoted and the quote has not expired
}

// Remaining returns the whole seconds left before the ticket's quote
// expiry, never negative.
func Remaining(t model.RFQTicket, now time.Time) int {
	secs := int(t.QuoteExpiry.Sub(now) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Executable reports whether the ticket can still be executed: status
// must be quoted and at least one whole second must remain. Eligibility
// flips to false exactly when the countdown reaches 0, independent of
// the reported status.
func Executable(t model.RFQTicket, now time.Time) bool {
	return t.Status == model.RFQQuoted && Remaining(t, now) > 0
}

// Countdowns derives the countdown view for every ticket against one
// shared clock instant.
func Countdowns(tickets []model.RFQTicket, now time.Time) []Countdown {
	out := make([]Countdown, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, Countdown{
			ID:         t.ID,
			Remaining:  Remaining(t, now),
			Executable: Executable(t, now),
		})
	}
	return out
}

// QuotedTickets filters the collection down to tickets in the quoted
// state, preserving order. The active-RFQ panel renders only these.
func QuotedTickets(tickets []model.RFQTicket) []model.RFQTicket {
	out := make([]model.RFQTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == model.RFQQuoted {
			out = append(out, t)
		}
	}
	return out
}
