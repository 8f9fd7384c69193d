package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"pricealert/internal/market/memorystore"
)

// WriteCSV writes the market-data export for one symbol: stats first, then
// the order book with asks before bids.
func WriteCSV(w io.Writer, q memorystore.Quote, book memorystore.OrderBook) error {
	s := Compute(q)
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	rows := [][]string{
		{"Category", "Value"},
		{"Symbol", q.Symbol},
		{"24h High", formatPrice(s.High)},
		{"24h Low", formatPrice(s.Low)},
		{"24h Volume", formatPrice(s.Volume)},
		{"Market Cap", s.MarketCap},
		{},
		{"Order Book"},
		{"Type", "Price", "Amount"},
	}
	for _, a := range book.Asks {
		rows = append(rows, []string{"ASK", a.Price.String(), a.Amount.String()})
	}
	for _, b := range book.Bids {
		rows = append(rows, []string{"BID", b.Price.String(), b.Amount.String()})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Filename is the download name for an export taken at unix-ms ts.
func Filename(symbol string, ts int64) string {
	return fmt.Sprintf("%s_market_data_%d.csv", symbol, ts)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
