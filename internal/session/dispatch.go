package session

import (
	"encoding/json"

	"github.com/rturnbull/otcdesk/internal/api"
	"github.com/rturnbull/otcdesk/internal/channel"
)

// dispatch routes one push envelope into the store. It runs on a
// channel read loop, so it only does a decode and a locked merge.
// Payloads that fail to decode, or that carry no identity field to
// upsert by, are dropped without disturbing held state, same as
// malformed frames at the connection layer.
func (s *Session) dispatch(env channel.Envelope) {
	switch env.Topic {
	case "prices":
		var wire api.WireQuote
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			s.logger.Debug("dropping undecodable quote payload", "error", err)
			return
		}
		if wire.InstrumentID == 0 {
			s.logger.Debug("dropping quote payload without instrument id")
			return
		}
		s.store.ApplyQuoteUpdate(wire.ToModel())

	case "rfq_updates":
		var wire api.WireRFQ
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			s.logger.Debug("dropping undecodable rfq payload", "error", err)
			return
		}
		if wire.ID == "" {
			s.logger.Debug("dropping rfq payload without id")
			return
		}
		s.store.ApplyRFQUpdate(wire.ToModel())

	case "trade_updates":
		var wire api.WireTrade
		if err := json.Unmarshal(env.Payload, &wire); err != nil {
			s.logger.Debug("dropping undecodable trade payload", "error", err)
			return
		}
		if wire.ID == 0 {
			s.logger.Debug("dropping trade payload without id")
			return
		}
		s.store.ApplyTradeUpdate(wire.ToModel())

	case "positions":
		// Position payloads are advisory only. The authoritative data
		// comes from the next full snapshot.
		s.store.InvalidatePositions()

	default:
		s.logger.Debug("dropping envelope for unknown topic", "topic", env.Topic)
	}
}
