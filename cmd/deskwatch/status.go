package main

import (
	"encoding/json"
	"net/http"

	"github.com/rturnbull/otcdesk/internal/session"
	"github.com/rturnbull/otcdesk/internal/store"
	"github.com/rturnbull/otcdesk/internal/version"
)

// createStatusHandler creates the HTTP handler for the local status
// endpoint.
func createStatusHandler(path string, sess *session.Session, st *store.Store) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		stats := st.Stats()

		status := struct {
			Status     string                 `json:"status"`
			Version    string                 `json:"version"`
			LoggedIn   bool                   `json:"logged_in"`
			Username   string                 `json:"username,omitempty"`
			Notice     string                 `json:"notice,omitempty"`
			Channels   map[string]string      `json:"channels"`
			Components map[string]interface{} `json:"components"`
		}{
			Status:   "ok",
			Version:  version.String(),
			LoggedIn: sess.LoggedIn(),
			Username: sess.User().Username,
			Notice:   sess.Notice(),
			Channels: sess.ChannelStates(),
			Components: map[string]interface{}{
				"store": map[string]interface{}{
					"quotes":            stats.Quotes,
					"rfqs":              stats.RFQs,
					"trades":            stats.Trades,
					"positions":         stats.Positions,
					"limits":            stats.Limits,
					"alerts":            stats.Alerts,
					"snapshots_applied": stats.SnapshotsApplied,
					"updates_applied":   stats.UpdatesApplied,
					"updates_discarded": stats.UpdatesDiscarded,
				},
			},
		}

		if !sess.LoggedIn() {
			status.Status = "degraded"
		}
		for _, state := range status.Channels {
			if state != "open" {
				status.Status = "degraded"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})

	return mux
}
