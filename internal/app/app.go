package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pricealert/config"
	"pricealert/internal/alert"
	"pricealert/internal/market/feed"
	"pricealert/internal/market/memorystore"
	"pricealert/internal/market/orderbook"
	"pricealert/internal/monitor"
	"pricealert/internal/scheduler"
	"pricealert/internal/server"
	"pricealert/pkg/binance"
	"pricealert/pkg/coinranking"
	"pricealert/pkg/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived component of the service.
type App struct {
	cfg *config.Config
	log *zap.Logger

	storage   storage.Store
	monitor   *monitor.Monitor
	server    *server.Server
	scheduler *scheduler.Scheduler

	watchlist *feed.WatchlistLoader
	books     *orderbook.Loader
}

// New loads persisted alerts and wires the feed, monitor, server and
// scheduler together. Nothing runs until Run.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	store, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	alerts := alert.NewStore(store, cfg.Storage.Key, log)
	alerts.Load(ctx)

	hub := server.NewHub(log)
	notifier := alert.NewNotifier(server.HubPlayer{Hub: hub, URL: cfg.Notifier.SoundURL}, hub, log)
	mon := monitor.New(alerts, notifier, log)

	quotes := memorystore.NewQuoteStore()
	books := memorystore.NewOrderBookStore()

	watchlist := &feed.WatchlistLoader{
		Source:  coinranking.NewRESTClient(cfg.Feed.BaseURL, cfg.Feed.APIKey, cfg.Feed.Host, cfg.Feed.Timeout),
		Store:   quotes,
		Handler: mon,
		Limit:   cfg.Feed.Limit,
		Timeout: cfg.Feed.Timeout,
		Logger:  log.Named("watchlist"),
	}
	bookLoader := &orderbook.Loader{
		Source:  binance.NewRESTClient(cfg.OrderBook.BaseURL, cfg.OrderBook.Timeout),
		Quotes:  quotes,
		Books:   books,
		Depth:   cfg.OrderBook.Depth,
		Levels:  cfg.OrderBook.Levels,
		Timeout: cfg.OrderBook.Timeout,
		Logger:  log.Named("orderbook"),
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.Feed.Poll, watchlist); err != nil {
		store.Close()
		return nil, fmt.Errorf("schedule watchlist: %w", err)
	}
	if err := sched.AddJob(cfg.OrderBook.Poll, bookLoader); err != nil {
		store.Close()
		return nil, fmt.Errorf("schedule order book: %w", err)
	}

	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		DevMode:      cfg.Server.DevMode,
		SoundURL:     cfg.Notifier.SoundURL,
		SoundFile:    cfg.Notifier.SoundFile,
		Log:          log,
		Monitor:      mon,
		Notifier:     notifier,
		Quotes:       quotes,
		Books:        books,
		Hub:          hub,
	})

	return &App{
		cfg:       cfg,
		log:       log,
		storage:   store,
		monitor:   mon,
		server:    srv,
		scheduler: sched,
		watchlist: watchlist,
		books:     bookLoader,
	}, nil
}

// Run serves until ctx is cancelled or the HTTP server fails, then tears
// everything down.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// first poll right away, then the order book for whatever it loaded
		if err := a.scheduler.RunNow(a.watchlist); err != nil {
			a.log.Warn("initial watchlist load failed", zap.Error(err))
		}
		if err := a.scheduler.RunNow(a.books); err != nil {
			a.log.Warn("initial order book load failed", zap.Error(err))
		}
		a.scheduler.Start()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *App) shutdown() error {
	a.log.Info("shutting down")
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
