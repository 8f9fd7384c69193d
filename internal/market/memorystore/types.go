package memorystore

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one watchlist entry as shown on the dashboard.
type Quote struct {
	UUID    string  `json:"uuid"`
	Symbol  string  `json:"symbol"`  // e.g. "BTC"
	Name    string  `json:"name"`    // e.g. "Bitcoin"
	Price   float64 `json:"price"`   // USD
	Change  float64 `json:"change"`  // 24h change in percent
	Volume  float64 `json:"volume"`  // 24h volume in USD
	IconURL string  `json:"iconUrl"` // coin icon
}

// Snapshot is the latest non-empty watchlist poll.
type Snapshot struct {
	Quotes    []Quote   `json:"quotes"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Level struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// OrderBook holds the top levels for one symbol. Asks are listed highest
// first so the two sides meet at the spread.
type OrderBook struct {
	Symbol    string    `json:"symbol"`
	Asks      []Level   `json:"asks"`
	Bids      []Level   `json:"bids"`
	Synthetic bool      `json:"synthetic"` // true when generated around the quote price
	UpdatedAt time.Time `json:"updatedAt"`
}
