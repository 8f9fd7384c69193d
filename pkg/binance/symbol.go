package binance

import "strings"

const quoteAsset = "USDT"

// TradingSymbol maps a watchlist symbol to a Binance USDT pair:
// "BTCUSD" -> "BTCUSDT", "BTC" -> "BTCUSDT", "BTCUSDT" stays.
func TradingSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch {
	case s == "":
		return ""
	case strings.HasSuffix(s, quoteAsset):
		return s
	case strings.HasSuffix(s, "USD"):
		return s + "T"
	default:
		return s + quoteAsset
	}
}
