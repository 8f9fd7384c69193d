package feed

import (
	"context"
	"time"

	"pricealert/internal/alert"
	"pricealert/internal/market/memorystore"
	"pricealert/pkg/coinranking"

	"go.uber.org/zap"
)

type coinSource interface {
	GetCoins(ctx context.Context, limit int) ([]coinranking.Coin, error)
}

// SnapshotHandler receives every non-empty watchlist poll.
type SnapshotHandler interface {
	HandleSnapshot(ctx context.Context, quotes []alert.Quote) []alert.Alert
}

// WatchlistLoader polls the price feed, keeps the latest snapshot and hands
// it to the alert monitor.
type WatchlistLoader struct {
	Source  coinSource
	Store   *memorystore.QuoteStore
	Handler SnapshotHandler
	Limit   int
	Timeout time.Duration
	Logger  *zap.Logger
}

// Load fetches one snapshot. A failed fetch is logged and returns an empty
// snapshot, which callers treat as "no update".
func (l *WatchlistLoader) Load(ctx context.Context) []memorystore.Quote {
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	coins, err := l.Source.GetCoins(ctx, l.Limit)
	if err != nil {
		l.Logger.Warn("failed to fetch watchlist", zap.Error(err))
		return []memorystore.Quote{}
	}

	quotes := make([]memorystore.Quote, 0, len(coins))
	for _, c := range coins {
		quotes = append(quotes, memorystore.Quote{
			UUID:    c.UUID,
			Symbol:  c.Symbol,
			Name:    c.Name,
			Price:   c.Price,
			Change:  c.Change,
			Volume:  c.Volume,
			IconURL: c.IconURL,
		})
	}
	return quotes
}

func (l *WatchlistLoader) Name() string { return "watchlist" }

// Run is one poll tick: fetch, store, evaluate.
func (l *WatchlistLoader) Run(ctx context.Context) error {
	quotes := l.Load(ctx)
	if !l.Store.Replace(quotes, time.Now()) {
		return nil
	}
	l.Logger.Debug("watchlist updated", zap.Int("count", len(quotes)))

	if l.Handler != nil {
		l.Handler.HandleSnapshot(ctx, PricePoints(quotes))
	}
	return nil
}

// PricePoints reduces quotes to what the evaluator needs.
func PricePoints(quotes []memorystore.Quote) []alert.Quote {
	out := make([]alert.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, alert.Quote{Symbol: q.Symbol, Price: q.Price})
	}
	return out
}
