package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"options-trade-log-go/internal/config"
	"options-trade-log-go/internal/models"
	"options-trade-log-go/internal/trades"
)

// ErrUnauthorized means the server rejected the credentials or the bearer
// token. The caller should send the user back to the login flow.
var ErrUnauthorized = errors.New("unauthorized")

// Client talks to the trade log API. All protected calls attach the bearer
// token obtained by Login.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	token   string
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// NewClient creates an API client for the configured base URL.
func NewClient(cfg *config.Dashboard, logger *zap.Logger) *Client {
	return &Client{
		client:  resty.New().SetBaseURL(cfg.BaseURL),
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
	}
}

// SetToken installs a previously issued bearer token (e.g. from a cached
// session) without logging in again.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token, empty before login.
func (c *Client) Token() string { return c.token }

// doRequest executes one rate-limited request. All operations are single
// shot: a failure surfaces to the caller, nothing is retried.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
	resp, err := req.SetContext(ctx).Execute(method, url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if resp.StatusCode() == 401 {
			return nil, ErrUnauthorized
		}
		var status statusResponse
		if e, ok := resp.Error().(*statusResponse); ok && e != nil {
			status = *e
		}
		if status.Message != "" {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), status.Message)
		}
		return nil, fmt.Errorf("request failed with status %s", resp.Status())
	}
	return resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	req := c.client.R().
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&statusResponse{}).
		SetError(&statusResponse{})
	if _, err := c.doRequest(ctx, "POST", "/auth/register", req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Login authenticates and stores the issued bearer token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := c.client.R().
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&statusResponse{}).
		SetError(&statusResponse{})
	resp, err := c.doRequest(ctx, "POST", "/auth/login", req)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	result := resp.Result().(*statusResponse)
	if result.Token == "" {
		return "", errors.New("login: empty token in response")
	}
	c.token = result.Token
	return c.token, nil
}

// ListTrades fetches every trade of the authenticated user.
func (c *Client) ListTrades(ctx context.Context) ([]models.Trade, error) {
	var list []models.Trade
	req := c.client.R().
		SetAuthToken(c.token).
		SetResult(&list).
		SetError(&statusResponse{})
	if _, err := c.doRequest(ctx, "GET", "/api/trades", req); err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return list, nil
}

// CreateTrade submits a new trade.
func (c *Client) CreateTrade(ctx context.Context, in trades.Input) error {
	req := c.client.R().
		SetAuthToken(c.token).
		SetBody(in).
		SetResult(&statusResponse{}).
		SetError(&statusResponse{})
	if _, err := c.doRequest(ctx, "POST", "/api/trades", req); err != nil {
		return fmt.Errorf("create trade: %w", err)
	}
	return nil
}

// UpdateTrade fully replaces the mutable fields of an owned trade.
func (c *Client) UpdateTrade(ctx context.Context, id uint, in trades.Input) error {
	req := c.client.R().
		SetAuthToken(c.token).
		SetBody(in).
		SetResult(&statusResponse{}).
		SetError(&statusResponse{})
	if _, err := c.doRequest(ctx, "PUT", fmt.Sprintf("/api/trades/%d", id), req); err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	return nil
}

// DeleteTrade removes an owned trade.
func (c *Client) DeleteTrade(ctx context.Context, id uint) error {
	req := c.client.R().
		SetAuthToken(c.token).
		SetError(&statusResponse{})
	if _, err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/api/trades/%d", id), req); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return nil
}

// NewInput derives pl and returnPct from the entered prices the same way the
// form submission does, and upper-cases the symbol for display. The server
// stores the derived values as sent.
func NewInput(date, symbol, optionType string, strikePrice float64, quantity int, buyPrice, sellPrice float64) trades.Input {
	return trades.Input{
		Date:        date,
		Symbol:      symbol,
		StrikePrice: strikePrice,
		OptionType:  optionType,
		Quantity:    quantity,
		BuyPrice:    buyPrice,
		SellPrice:   sellPrice,
		PL:          (sellPrice - buyPrice) * float64(quantity),
		ReturnPct:   (sellPrice - buyPrice) / buyPrice * 100,
	}
}
