package binance

import "github.com/shopspring/decimal"

// DepthResponse is the raw /depth payload. Levels are [price, quantity]
// string pairs.
type DepthResponse struct {
	LastUpdateID int64      `json:"lastUpdateId"`
	Bids         [][]string `json:"bids"`
	Asks         [][]string `json:"asks"`
}

// ErrorResponse is what Binance returns on a 4xx.
type ErrorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type Level struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// Depth is an order book snapshot: asks ascending, bids descending, as sent.
type Depth struct {
	Asks []Level `json:"asks"`
	Bids []Level `json:"bids"`
}
