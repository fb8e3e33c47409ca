// Package coingecko fetches spot prices from the CoinGecko simple/price API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// PublicURL serves the free and demo plans.
	PublicURL = "https://api.coingecko.com/api/v3"
	// ProURL serves paid plans.
	ProURL = "https://pro-api.coingecko.com/api/v3"

	DefaultTimeout = 30 * time.Second
)

// PriceServiceError covers every way a price lookup can fail: transport,
// HTTP status, undecodable body, or a requested price missing from the reply.
type PriceServiceError struct {
	Op  string
	Err error
}

func (e *PriceServiceError) Error() string {
	return fmt.Sprintf("price service %s: %v", e.Op, e.Err)
}

func (e *PriceServiceError) Unwrap() error { return e.Err }

// Client represents a CoinGecko API client
type Client struct {
	baseURL    string
	apiKey     string
	pro        bool
	httpClient *http.Client
	log        logrus.FieldLogger
}

type Option func(*Client)

// WithBaseURL points the client at another server, mostly for tests and proxies.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a new CoinGecko client. apiKey may be empty for the
// keyless public tier.
func NewClient(apiKey string, pro bool, opts ...Option) *Client {
	baseURL := PublicURL
	if pro {
		baseURL = ProURL
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		pro:     pro,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPrices returns the price of every coin in coinIDs quoted in currency,
// using a single request. Currencies are lower-cased, as CoinGecko keys its
// replies that way.
func (c *Client) FetchPrices(ctx context.Context, coinIDs []string, currency string) (map[string]decimal.Decimal, error) {
	currency = strings.ToLower(currency)
	if currency == "" {
		return nil, &PriceServiceError{Op: "request", Err: fmt.Errorf("currency is required")}
	}
	if len(coinIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(coinIDs, ","))
	params.Set("vs_currencies", currency)
	apiURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &PriceServiceError{Op: "request", Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		if c.pro {
			httpReq.Header.Set("x-cg-pro-api-key", c.apiKey)
		} else {
			httpReq.Header.Set("x-cg-demo-api-key", c.apiKey)
		}
	}

	c.log.WithField("url", apiURL).Debug("fetching prices")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &PriceServiceError{Op: "request", Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &PriceServiceError{
			Op:  "request",
			Err: fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	// UseNumber keeps prices exact until they become decimals.
	var doc any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &PriceServiceError{Op: "decode", Err: fmt.Errorf("decode response: %w", err)}
	}

	prices := make(map[string]decimal.Decimal, len(coinIDs))
	for _, id := range coinIDs {
		p, err := extractPrice(doc, id, currency)
		if err != nil {
			return nil, &PriceServiceError{Op: "decode", Err: err}
		}
		prices[id] = p
	}

	c.log.WithField("coins", len(prices)).Debug("fetched prices")
	return prices, nil
}

// Price looks up a single coin.
func (c *Client) Price(ctx context.Context, coinID, currency string) (decimal.Decimal, error) {
	prices, err := c.FetchPrices(ctx, []string{coinID}, currency)
	if err != nil {
		return decimal.Zero, err
	}
	return prices[coinID], nil
}

func extractPrice(doc any, coinID, currency string) (decimal.Decimal, error) {
	path := fmt.Sprintf("$[%q][%q]", coinID, currency)
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no %s price for %q: %w", currency, coinID, err)
	}

	switch n := v.(type) {
	case json.Number:
		p, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse %s price for %q: %w", currency, coinID, err)
		}
		return p, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("%s price for %q is not a number: %v", currency, coinID, v)
	}
}
