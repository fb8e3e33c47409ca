package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient("", false, WithBaseURL(server.URL), WithTimeout(5*time.Second))
}

func TestNewClient(t *testing.T) {
	t.Run("public", func(t *testing.T) {
		client := NewClient("", false)
		assert.Equal(t, PublicURL, client.baseURL)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("pro", func(t *testing.T) {
		client := NewClient("key", true)
		assert.Equal(t, ProURL, client.baseURL)
		assert.Equal(t, "key", client.apiKey)
	})

	t.Run("base url override", func(t *testing.T) {
		client := NewClient("", false, WithBaseURL("http://localhost:9999/api/"))
		assert.Equal(t, "http://localhost:9999/api", client.baseURL)
	})
}

func TestFetchPrices_Success(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Empty(t, r.Header.Get("x-cg-demo-api-key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":67187.339},"ethereum":{"usd":3200.1234567890123}}`))
	})

	prices, err := client.FetchPrices(context.Background(), []string{"bitcoin", "ethereum"}, "USD")
	require.NoError(t, err)
	require.Len(t, prices, 2)

	assert.Equal(t, "67187.339", prices["bitcoin"].String())
	assert.Equal(t, "3200.1234567890123", prices["ethereum"].String())
	assert.Equal(t, 1, calls)
}

func TestFetchPrices_APIKeyHeaders(t *testing.T) {
	var demo, pro string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		demo = r.Header.Get("x-cg-demo-api-key")
		pro = r.Header.Get("x-cg-pro-api-key")
		w.Write([]byte(`{"bitcoin":{"eur":1}}`))
	}))
	defer server.Close()

	_, err := NewClient("demo-key", false, WithBaseURL(server.URL)).FetchPrices(context.Background(), []string{"bitcoin"}, "eur")
	require.NoError(t, err)
	assert.Equal(t, "demo-key", demo)
	assert.Empty(t, pro)

	_, err = NewClient("pro-key", true, WithBaseURL(server.URL)).FetchPrices(context.Background(), []string{"bitcoin"}, "eur")
	require.NoError(t, err)
	assert.Equal(t, "pro-key", pro)
}

func TestFetchPrices_NoCoins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	prices, err := client.FetchPrices(context.Background(), nil, "usd")
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestFetchPrices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		coins   []string
		wantOp  string
		wantMsg string
	}{
		{
			name:    "http error",
			status:  http.StatusTooManyRequests,
			body:    `{"status":{"error_code":429}}`,
			coins:   []string{"bitcoin"},
			wantOp:  "request",
			wantMsg: "status 429",
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `{"bitcoin":`,
			coins:   []string{"bitcoin"},
			wantOp:  "decode",
			wantMsg: "decode response",
		},
		{
			name:    "coin missing",
			status:  http.StatusOK,
			body:    `{"bitcoin":{"usd":1}}`,
			coins:   []string{"bitcoin", "notacoin"},
			wantOp:  "decode",
			wantMsg: `"notacoin"`,
		},
		{
			name:    "currency missing",
			status:  http.StatusOK,
			body:    `{"bitcoin":{}}`,
			coins:   []string{"bitcoin"},
			wantOp:  "decode",
			wantMsg: "no usd price",
		},
		{
			name:    "not a number",
			status:  http.StatusOK,
			body:    `{"bitcoin":{"usd":"cheap"}}`,
			coins:   []string{"bitcoin"},
			wantOp:  "decode",
			wantMsg: "not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchPrices(context.Background(), tt.coins, "usd")
			require.Error(t, err)

			var perr *PriceServiceError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantOp, perr.Op)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFetchPrices_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient("", false, WithBaseURL(url)).FetchPrices(context.Background(), []string{"bitcoin"}, "usd")
	var perr *PriceServiceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "request", perr.Op)
}

func TestFetchPrices_RequiresCurrency(t *testing.T) {
	_, err := NewClient("", false).FetchPrices(context.Background(), []string{"bitcoin"}, "")
	var perr *PriceServiceError
	assert.ErrorAs(t, err, &perr)
}

func TestPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currencies"))
		w.Write([]byte(`{"bitcoin":{"eur":20000}}`))
	})

	p, err := client.Price(context.Background(), "bitcoin", "eur")
	require.NoError(t, err)
	assert.Equal(t, "20000", p.String())
}
