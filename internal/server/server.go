package server

import (
	"context"
	"net/http"
	"time"

	"pricealert/internal/alert"
	"pricealert/internal/market/memorystore"
	"pricealert/internal/monitor"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DevMode      bool

	SoundURL  string
	SoundFile string

	Log      *zap.Logger
	Monitor  *monitor.Monitor
	Notifier *alert.Notifier
	Quotes   *memorystore.QuoteStore
	Books    *memorystore.OrderBookStore
	Hub      *Hub
}

// Server is the dashboard's HTTP and WebSocket surface.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    *zap.Logger

	monitor  *monitor.Monitor
	notifier *alert.Notifier
	quotes   *memorystore.QuoteStore
	books    *memorystore.OrderBookStore
	hub      *Hub

	soundURL  string
	soundFile string
	started   time.Time
}

func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.Named("server"),
		monitor:   cfg.Monitor,
		notifier:  cfg.Notifier,
		quotes:    cfg.Quotes,
		books:     cfg.Books,
		hub:       cfg.Hub,
		soundURL:  cfg.SoundURL,
		soundFile: cfg.SoundFile,
		started:   time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5, "application/json", "text/csv"))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ws", s.hub.ServeWS(s.handleControl))
	s.router.Get(s.soundPath(), s.handleSound)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.handleListAlerts)
			r.Post("/", s.handleCreateAlert)
			r.Get("/count", s.handleAlertCount)
			r.Delete("/{id}", s.handleDeleteAlert)
		})

		r.Post("/audio/enable", s.handleEnableAudio)
		r.Get("/watchlist", s.handleWatchlist)

		r.Route("/market", func(r chi.Router) {
			r.Put("/selected", s.handleSelectSymbol)
			r.Get("/{symbol}", s.handleMarket)
			r.Get("/{symbol}/export", s.handleExport)
		})

		r.Get("/system/status", s.handleSystemStatus)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.log.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
