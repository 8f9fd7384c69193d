package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pricealert/internal/alert"

	"go.uber.org/zap"
)

// CreateRequest is the user input behind a new alert. A nil Price defaults
// to the latest quote for Symbol.
type CreateRequest struct {
	Symbol    string   `json:"symbol"`
	Condition string   `json:"condition"`
	Price     *float64 `json:"price"`
	Note      string   `json:"note"`
}

// Monitor is the single writer of the alert collection. Evaluation passes and
// user mutations are serialized, so a pass finishes (status writes included)
// before the next snapshot or request is handled.
type Monitor struct {
	mu     sync.Mutex
	latest []alert.Quote

	store    *alert.Store
	notifier *alert.Notifier
	logger   *zap.Logger
}

// New publishes the current badge so dashboards start from the loaded state.
func New(store *alert.Store, notifier *alert.Notifier, logger *zap.Logger) *Monitor {
	m := &Monitor{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("monitor"),
	}
	notifier.UpdateBadge(store.ActiveCount())
	return m
}

// HandleSnapshot runs one evaluation pass over a fresh watchlist snapshot
// and returns the alerts that triggered. An empty snapshot means "no update".
func (m *Monitor) HandleSnapshot(ctx context.Context, quotes []alert.Quote) []alert.Alert {
	if len(quotes) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.latest = append(m.latest[:0], quotes...)
	return m.evaluateLocked(ctx)
}

// CreateAlert validates the request, stores the alert and evaluates it
// against the latest snapshot.
func (m *Monitor) CreateAlert(ctx context.Context, req CreateRequest) (alert.Alert, error) {
	cond, err := alert.ParseCondition(req.Condition)
	if err != nil {
		return alert.Alert{}, err
	}
	symbol := strings.TrimSpace(req.Symbol)

	m.mu.Lock()
	defer m.mu.Unlock()

	var price float64
	if req.Price != nil {
		price = *req.Price
	} else {
		p, ok := m.latestPriceLocked(symbol)
		if !ok {
			return alert.Alert{}, fmt.Errorf("%w: no quote for %q to default from", alert.ErrInvalidPrice, symbol)
		}
		price = p
	}

	a, err := alert.New(m.store.NextID(), symbol, cond, price, req.Note)
	if err != nil {
		return alert.Alert{}, err
	}

	m.store.Add(ctx, a)
	m.logger.Info("alert created",
		zap.Int64("alert_id", a.ID),
		zap.String("symbol", a.Symbol),
		zap.String("condition", string(a.Condition)),
		zap.Float64("price", a.Price),
	)

	if triggered := m.evaluateLocked(ctx); len(triggered) == 0 {
		m.notifier.UpdateBadge(m.store.ActiveCount())
	}

	if got, ok := m.store.Get(a.ID); ok {
		a = got
	}
	return a, nil
}

// DeleteAlert hard-deletes an alert in either state. Unknown ids are ignored.
func (m *Monitor) DeleteAlert(ctx context.Context, id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store.Get(id); !ok {
		return
	}
	m.store.Delete(ctx, id)
	m.logger.Info("alert deleted", zap.Int64("alert_id", id))
	m.notifier.UpdateBadge(m.store.ActiveCount())
}

func (m *Monitor) Alerts() []alert.Alert {
	return m.store.List()
}

func (m *Monitor) Active() []alert.Alert {
	return m.store.Active()
}

func (m *Monitor) Triggered() []alert.Alert {
	return m.store.Triggered()
}

func (m *Monitor) ActiveCount() int {
	return m.store.ActiveCount()
}

// LatestPrice returns the price of symbol in the last non-empty snapshot.
func (m *Monitor) LatestPrice(symbol string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latestPriceLocked(symbol)
}

func (m *Monitor) latestPriceLocked(symbol string) (float64, bool) {
	for _, q := range m.latest {
		if q.Symbol == symbol {
			return q.Price, true
		}
	}
	return 0, false
}

func (m *Monitor) evaluateLocked(ctx context.Context) []alert.Alert {
	if len(m.latest) == 0 {
		return nil
	}

	res := alert.Evaluate(m.latest, m.store.List())
	if len(res.Triggered) == 0 {
		return nil
	}

	for _, a := range res.Triggered {
		m.store.UpdateStatus(ctx, a.ID, alert.StatusTriggered)
	}
	m.notifier.Notify(ctx, res.Triggered, m.store.ActiveCount())

	return res.Triggered
}
