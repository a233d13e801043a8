// Package nutrition estimates meal calories from the Nutritionix search API.
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/theory/jsonpath"
	"golang.org/x/time/rate"

	"github.com/nonibytes/mangiato/internal/logging"
)

const (
	DefaultBaseURL = "https://api.nutritionix.com"
	DefaultTimeout = 5 * time.Second
	// DefaultRPS keeps bulk imports under the free-tier request rate.
	DefaultRPS = 2.0

	caloriesPath = "$.hits[*].fields.nf_calories"
	maxBody      = 1 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL string
	AppID   string
	AppKey  string
	Timeout time.Duration
	// RPS limits outgoing requests per second. Zero or less disables the
	// limit.
	RPS        float64
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client queries the top five search hits for a meal description and
// averages their calories.
type Client struct {
	baseURL string
	appID   string
	appKey  string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	path    *jsonpath.Path
	logger  *slog.Logger
}

func New(cfg Config) (*Client, error) {
	path, err := jsonpath.Parse(caloriesPath)
	if err != nil {
		return nil, fmt.Errorf("parse calories path: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
		timeout: cfg.Timeout,
		http:    hc,
		limiter: rate.NewLimiter(limit, 1),
		path:    path,
		logger:  logging.Default(cfg.Logger).With("component", "nutrition"),
	}, nil
}

// EstimateCalories returns the average calories of the top hits for
// description, or nil when the service fails or has no answer. Failures are
// logged, never returned: a missing estimate leaves the meal's calories
// empty.
func (c *Client) EstimateCalories(ctx context.Context, description string) *float64 {
	avg, err := c.lookup(ctx, description)
	if err != nil {
		c.logger.Warn("calorie lookup failed", "description", description, "error", err)
		return nil
	}
	return avg
}

func (c *Client) lookup(ctx context.Context, description string) (*float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(description), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return c.average(body)
}

func (c *Client) searchURL(description string) string {
	q := url.Values{}
	q.Set("results", "0:5")
	q.Set("fields", "nf_calories")
	q.Set("appId", c.appID)
	q.Set("appKey", c.appKey)
	return c.baseURL + "/v1_1/search/" + url.PathEscape(description) + "?" + q.Encode()
}

// average extracts every hit's nf_calories and returns their mean. No hits
// means no estimate.
func (c *Client) average(body []byte) (*float64, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var sum float64
	n := 0
	for _, v := range c.path.Select(doc) {
		f, ok := v.(float64)
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	c.logger.Debug("calorie estimate", "hits", n, "average", avg)
	return &avg, nil
}
