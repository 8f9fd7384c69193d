package binance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseLevels converts [price, quantity] string pairs into Levels, skipping
// incomplete or unparseable rows.
func ParseLevels(raw [][]string) []Level {
	out := make([]Level, 0, len(raw))

	for _, row := range raw {
		if len(row) < 2 {
			continue
		}
		price, err := decimal.NewFromString(row[0])
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(row[1])
		if err != nil {
			continue
		}
		out = append(out, Level{Price: price, Amount: amount})
	}
	return out
}

// ParseDepth converts a raw depth response.
func ParseDepth(raw DepthResponse) (Depth, error) {
	d := Depth{
		Asks: ParseLevels(raw.Asks),
		Bids: ParseLevels(raw.Bids),
	}
	if len(raw.Asks)+len(raw.Bids) > 0 && len(d.Asks)+len(d.Bids) == 0 {
		return Depth{}, fmt.Errorf("no parseable levels in depth response")
	}
	return d, nil
}
