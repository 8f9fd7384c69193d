package coinranking

import "encoding/json"

// Response is the envelope Coinranking wraps every payload in.
type Response struct {
	Status  string          `json:"status"`  // "success" or "fail"
	Type    string          `json:"type"`    // error type when Status is "fail"
	Message string          `json:"message"` // human-readable error
	Data    json.RawMessage `json:"data"`    // delay decoding, payload varies per endpoint
}

type CoinsData struct {
	Coins []RawCoin `json:"coins"`
}

// RawCoin is a coin as sent by the API; numbers arrive as strings.
type RawCoin struct {
	UUID      string `json:"uuid"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Change    string `json:"change"`    // 24h change in percent
	Volume24h string `json:"24hVolume"` // 24h volume in USD
	IconURL   string `json:"iconUrl"`
}

// Coin is a parsed watchlist entry.
type Coin struct {
	UUID    string  `json:"uuid"`
	Symbol  string  `json:"symbol"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Change  float64 `json:"change"`
	Volume  float64 `json:"volume"`
	IconURL string  `json:"iconUrl"`
}
