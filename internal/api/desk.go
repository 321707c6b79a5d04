package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rturnbull/otcdesk/internal/model"
)

// Login authenticates against the backend and installs the returned
// bearer token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (model.User, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/login", body, &resp); err != nil {
		return model.User{}, fmt.Errorf("login: %w", err)
	}

	c.SetToken(resp.AccessToken)

	c.logger.Info("logged in",
		"username", resp.User.Username,
		"role", resp.User.Role,
	)

	return resp.User.ToModel(), nil
}

// GetCurrentPrices fetches the live quote for every instrument.
func (c *Client) GetCurrentPrices(ctx context.Context) ([]model.Quote, error) {
	var wire []WireQuote
	if err := c.get(ctx, "/api/pricing/current", nil, &wire); err != nil {
		return nil, fmt.Errorf("get prices: %w", err)
	}

	quotes := make([]model.Quote, 0, len(wire))
	for i := range wire {
		quotes = append(quotes, wire[i].ToModel())
	}
	return quotes, nil
}

// GetRFQs fetches the active RFQ tickets, most recent first.
func (c *Client) GetRFQs(ctx context.Context) ([]model.RFQTicket, error) {
	query := url.Values{}
	query.Set("active_only", "true")
	query.Set("limit", "200")

	var wire []WireRFQ
	if err := c.get(ctx, "/api/rfq", query, &wire); err != nil {
		return nil, fmt.Errorf("get rfqs: %w", err)
	}

	tickets := make([]model.RFQTicket, 0, len(wire))
	for i := range wire {
		tickets = append(tickets, wire[i].ToModel())
	}
	return tickets, nil
}

// CreateRFQ submits a new request-for-quote. The ticket comes back with
// its server-assigned id and pricing.
func (c *Client) CreateRFQ(ctx context.Context, req CreateRFQRequest) (model.RFQTicket, error) {
	var wire WireRFQ
	if err := c.post(ctx, "/api/rfq", req, &wire); err != nil {
		return model.RFQTicket{}, fmt.Errorf("create rfq: %w", err)
	}
	return wire.ToModel(), nil
}

// ExecuteTrade executes a quoted RFQ.
func (c *Client) ExecuteTrade(ctx context.Context, req ExecuteTradeRequest) (model.TradeRecord, error) {
	var wire WireTrade
	if err := c.post(ctx, "/api/trades", req, &wire); err != nil {
		return model.TradeRecord{}, fmt.Errorf("execute trade: %w", err)
	}
	return wire.ToModel(), nil
}

// GetTrades fetches the first page of the trade blotter (200 newest).
func (c *Client) GetTrades(ctx context.Context) ([]model.TradeRecord, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("page_size", strconv.Itoa(200))

	var page TradesPage
	if err := c.get(ctx, "/api/trades", query, &page); err != nil {
		return nil, fmt.Errorf("get trades: %w", err)
	}

	trades := make([]model.TradeRecord, 0, len(page.Items))
	for i := range page.Items {
		trades = append(trades, page.Items[i].ToModel())
	}
	return trades, nil
}

// GetPositions fetches the full inventory snapshot.
func (c *Client) GetPositions(ctx context.Context) ([]model.PositionSnapshot, error) {
	var wire []WirePosition
	if err := c.get(ctx, "/api/positions", nil, &wire); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}

	positions := make([]model.PositionSnapshot, 0, len(wire))
	for i := range wire {
		positions = append(positions, wire[i].ToModel())
	}
	return positions, nil
}

// GetLimits fetches the risk limit catalog.
func (c *Client) GetLimits(ctx context.Context) ([]model.RiskLimitRule, error) {
	var wire []WireRiskLimit
	if err := c.get(ctx, "/api/limits", nil, &wire); err != nil {
		return nil, fmt.Errorf("get limits: %w", err)
	}

	limits := make([]model.RiskLimitRule, 0, len(wire))
	for i := range wire {
		limits = append(limits, wire[i].ToModel())
	}
	return limits, nil
}

// GetRiskAlerts fetches the current limit breach alerts.
func (c *Client) GetRiskAlerts(ctx context.Context) ([]model.RiskAlert, error) {
	var resp AlertsResponse
	if err := c.get(ctx, "/api/limits/alerts", nil, &resp); err != nil {
		return nil, fmt.Errorf("get risk alerts: %w", err)
	}

	alerts := make([]model.RiskAlert, 0, len(resp.Alerts))
	for i := range resp.Alerts {
		alerts = append(alerts, resp.Alerts[i].ToModel())
	}
	return alerts, nil
}

// GetClientAnalytics fetches the analytics record for one client.
func (c *Client) GetClientAnalytics(ctx context.Context, clientID int) (model.ClientAnalytics, error) {
	var wire WireClientAnalytics
	path := fmt.Sprintf("/api/clients/%d/analytics", clientID)
	if err := c.get(ctx, path, nil, &wire); err != nil {
		return model.ClientAnalytics{}, fmt.Errorf("get client analytics: %w", err)
	}
	return wire.ToModel(), nil
}

// ExportTradesCSV streams the trade blotter CSV export to w.
func (c *Client) ExportTradesCSV(ctx context.Context, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/trades/export.csv", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("export trades: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
