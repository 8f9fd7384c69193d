package orderbook

import (
	"context"
	"math/rand"
	"time"

	"pricealert/internal/market/memorystore"
	"pricealert/pkg/binance"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type depthSource interface {
	GetDepth(ctx context.Context, symbol string, limit int) (binance.Depth, error)
}

// stepRatio spaces synthetic levels 0.01% apart.
var stepRatio = decimal.RequireFromString("0.0001")

// Loader refreshes the order book of the selected symbol. When the exchange
// has nothing for it, a synthetic book is built around the quote price.
type Loader struct {
	Source  depthSource
	Quotes  *memorystore.QuoteStore
	Books   *memorystore.OrderBookStore
	Depth   int
	Levels  int
	Timeout time.Duration
	Logger  *zap.Logger

	// Rand returns amounts in [0,1) for synthetic levels.
	Rand func() float64
}

func (l *Loader) Name() string { return "orderbook" }

// Run is one refresh tick. Nothing is selected and nothing is loaded yet is
// not an error.
func (l *Loader) Run(ctx context.Context) error {
	symbol := l.Books.Selected()
	if symbol == "" {
		q, ok := l.Quotes.First()
		if !ok {
			return nil
		}
		symbol = q.Symbol
	}

	book := l.Load(ctx, symbol)
	l.Books.Put(book)
	l.Logger.Debug("order book updated",
		zap.String("symbol", symbol),
		zap.Int("asks", len(book.Asks)),
		zap.Int("bids", len(book.Bids)),
		zap.Bool("synthetic", book.Synthetic),
	)
	return nil
}

// Load fetches the book for symbol, falling back to a synthetic one.
func (l *Loader) Load(ctx context.Context, symbol string) memorystore.OrderBook {
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	depth, err := l.Source.GetDepth(ctx, symbol, l.Depth)
	if err != nil {
		l.Logger.Warn("failed to fetch order book", zap.String("symbol", symbol), zap.Error(err))
	}

	if err == nil && len(depth.Asks) > 0 && len(depth.Bids) > 0 {
		return memorystore.OrderBook{
			Symbol:    symbol,
			Asks:      reverse(top(depth.Asks, l.Levels)),
			Bids:      top(depth.Bids, l.Levels),
			UpdatedAt: time.Now(),
		}
	}

	q, _ := l.Quotes.Get(symbol)
	return Synthetic(symbol, q.Price, l.Levels, l.randFunc())
}

func (l *Loader) randFunc() func() float64 {
	if l.Rand != nil {
		return l.Rand
	}
	return rand.Float64
}

// Synthetic builds levels stepping 0.01% away from price on each side. Asks
// are listed highest first.
func Synthetic(symbol string, price float64, levels int, rnd func() float64) memorystore.OrderBook {
	p := decimal.NewFromFloat(price)
	step := p.Mul(stepRatio)

	asks := make([]memorystore.Level, levels)
	bids := make([]memorystore.Level, levels)
	for i := 0; i < levels; i++ {
		offset := step.Mul(decimal.NewFromInt(int64(i + 1)))
		asks[levels-1-i] = memorystore.Level{
			Price:  p.Add(offset),
			Amount: decimal.NewFromFloat(rnd() * 2),
		}
		bids[i] = memorystore.Level{
			Price:  p.Sub(offset),
			Amount: decimal.NewFromFloat(rnd() * 2),
		}
	}

	return memorystore.OrderBook{
		Symbol:    symbol,
		Asks:      asks,
		Bids:      bids,
		Synthetic: true,
		UpdatedAt: time.Now(),
	}
}

func top(levels []binance.Level, n int) []memorystore.Level {
	if len(levels) > n {
		levels = levels[:n]
	}
	out := make([]memorystore.Level, 0, len(levels))
	for _, lv := range levels {
		out = append(out, memorystore.Level{Price: lv.Price, Amount: lv.Amount})
	}
	return out
}

func reverse(levels []memorystore.Level) []memorystore.Level {
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
	return levels
}
