package coinranking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coinsBody = `{
  "status": "success",
  "data": {
    "coins": [
      {"uuid": "Qwsogvtv82FCd", "symbol": "BTC", "name": "Bitcoin", "price": "50123.45", "change": "-1.25", "24hVolume": "31000000000", "iconUrl": "https://cdn/btc.svg"},
      {"uuid": "razxDUgYGNAdQ", "symbol": "ETH", "name": "Ethereum", "price": "3012.1", "change": "2.5", "24hVolume": "12000000000"},
      {"uuid": "broken", "symbol": "XXX", "name": "Broken", "price": null}
    ]
  }
}`

// go test -v --run TestGetCoins
func TestGetCoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "coinranking1.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))
		_, _ = w.Write([]byte(coinsBody))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "key", "coinranking1.p.rapidapi.com", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coins, err := client.GetCoins(ctx, 10)
	require.NoError(t, err)
	require.Len(t, coins, 2, "rows with an unparseable price are skipped")

	assert.Equal(t, Coin{
		UUID:    "Qwsogvtv82FCd",
		Symbol:  "BTC",
		Name:    "Bitcoin",
		Price:   50123.45,
		Change:  -1.25,
		Volume:  31000000000,
		IconURL: "https://cdn/btc.svg",
	}, coins[0])
	assert.Equal(t, "ETH", coins[1].Symbol)
}

// go test -v --run TestGetCoinsFailures
func TestGetCoinsFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusTooManyRequests, body: `{"message":"rate limit"}`},
		{name: "api failure", status: http.StatusOK, body: `{"status":"fail","type":"UNAUTHORIZED","message":"unauthorized"}`},
		{name: "garbage", status: http.StatusOK, body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewRESTClient(srv.URL, "key", "host", time.Second)
			_, err := client.GetCoins(context.Background(), 10)
			assert.Error(t, err)
		})
	}
}
