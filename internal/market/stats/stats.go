package stats

import (
	"fmt"
	"math"

	"pricealert/internal/market/memorystore"
)

// Stats are display figures derived from a single quote. The feed does not
// carry a real 24h range, so high and low are projected from the change.
type Stats struct {
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Volume     float64 `json:"volume"`
	MarketCap  string  `json:"marketCap"`
	Volatility float64 `json:"volatility"` // 0..100
}

func Compute(q memorystore.Quote) Stats {
	change := math.Abs(q.Change) / 100
	return Stats{
		High:       q.Price * (1 + change),
		Low:        q.Price * (1 - change),
		Volume:     q.Volume,
		MarketCap:  fmt.Sprintf("$%.2fB", q.Volume*q.Price/1e9),
		Volatility: math.Min(100, math.Abs(q.Change)*4),
	}
}
