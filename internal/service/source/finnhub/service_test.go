package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_MapsCongressTrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{
				"symbol": "NVDA",
				"name": "Nancy Pelosi",
				"chamber": "House",
				"transactionType": "Purchase",
				"amountFrom": 1000001,
				"transactionDate": "2026-08-18",
				"filingDate": "2026-08-22"
			},
			{
				"symbol": "TSLA",
				"name": "Tommy Tuberville",
				"chamber": "Senate",
				"transactionType": "Sale",
				"amountFrom": "$15,001 - $50,000",
				"transactionDate": "2026-08-19",
				"filingDate": "2026-08-23"
			}
		]}`))
	}))
	defer srv.Close()

	svc := NewService("test-key", WithBaseURL(srv.URL))
	trades, err := svc.Fetch(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, "finnhub_congress", trades[0].Source)
	assert.Equal(t, "NVDA", trades[0].Ticker)
	assert.Equal(t, "Congress - House", trades[0].InsiderTitle)
	assert.True(t, decimal.NewFromInt(1000001).Equal(trades[0].Value), "got %s", trades[0].Value)

	// Bracketed amount strings resolve to the lower bound.
	assert.True(t, decimal.NewFromInt(15001).Equal(trades[1].Value), "got %s", trades[1].Value)
}

func TestFetch_MissingAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"symbol": "X", "name": "Someone"}]}`))
	}))
	defer srv.Close()

	svc := NewService("test-key", WithBaseURL(srv.URL))
	trades, err := svc.Fetch(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Value.IsZero())
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewService("test-key", WithBaseURL(srv.URL))
	_, err := svc.Fetch(context.Background(), 7)
	assert.Error(t, err)
}
