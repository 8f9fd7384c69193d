package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetDepth fetches the order book for a watchlist symbol, mapped to its USDT pair.
func (c *RESTClient) GetDepth(ctx context.Context, symbol string, limit int) (Depth, error) {
	q := url.Values{}
	q.Set("symbol", TradingSymbol(symbol))
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/depth?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Depth{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Depth{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			return Depth{}, fmt.Errorf("binance error %d: %s", apiErr.Code, apiErr.Msg)
		}
		return Depth{}, fmt.Errorf("binance error (%d): %s", resp.StatusCode, body)
	}

	var raw DepthResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Depth{}, fmt.Errorf("decode response: %w", err)
	}

	depth, err := ParseDepth(raw)
	if err != nil {
		return Depth{}, fmt.Errorf("parse result: %w", err)
	}
	return depth, nil
}
