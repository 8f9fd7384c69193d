package coinranking

import "strconv"

// ParseCoinList converts API rows to Coins. Rows without a symbol or with an
// unparseable price are skipped; a missing change or volume reads as zero.
func ParseCoinList(raw []RawCoin) []Coin {
	out := make([]Coin, 0, len(raw))

	for _, c := range raw {
		if c.Symbol == "" {
			continue
		}
		price, err := strconv.ParseFloat(c.Price, 64)
		if err != nil {
			continue
		}

		out = append(out, Coin{
			UUID:    c.UUID,
			Symbol:  c.Symbol,
			Name:    c.Name,
			Price:   price,
			Change:  parseOrZero(c.Change),
			Volume:  parseOrZero(c.Volume24h),
			IconURL: c.IconURL,
		})
	}
	return out
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
