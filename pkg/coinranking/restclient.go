package coinranking

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

// RESTClient talks to the Coinranking API through RapidAPI.
type RESTClient struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient *http.Client
}

func NewRESTClient(baseURL, apiKey, host string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		host:       host,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetCoins fetches the top `limit` coins by market cap.
func (c *RESTClient) GetCoins(ctx context.Context, limit int) ([]Coin, error) {
	endpoint := c.baseURL + "/coins?limit=" + url.QueryEscape(strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("coinranking error (%d): %s", resp.StatusCode, body)
	}

	var rawResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rawResp.Status != "success" {
		return nil, fmt.Errorf("coinranking status %q: %s", rawResp.Status, rawResp.Message)
	}

	var data CoinsData
	if err := json.Unmarshal(rawResp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}

	return ParseCoinList(data.Coins), nil
}
