package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pricealert/internal/alert"
	"pricealert/internal/market/memorystore"
	"pricealert/internal/market/stats"
	"pricealert/internal/monitor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type alertsResponse struct {
	Active      []alert.Alert `json:"active"`
	Triggered   []alert.Alert `json:"triggered"`
	ActiveCount int           `json:"activeCount"`
}

type countResponse struct {
	ActiveCount int `json:"activeCount"`
}

type marketResponse struct {
	Quote     memorystore.Quote      `json:"quote"`
	Stats     stats.Stats            `json:"stats"`
	OrderBook *memorystore.OrderBook `json:"orderBook"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "pricealert",
	})
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, alertsResponse{
		Active:      s.monitor.Active(),
		Triggered:   s.monitor.Triggered(),
		ActiveCount: s.monitor.ActiveCount(),
	})
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req monitor.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	a, err := s.monitor.CreateAlert(r.Context(), req)
	if err != nil {
		if isValidation(err) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("failed to create alert", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create alert")
		return
	}

	s.writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "alert id must be numeric")
		return
	}

	s.monitor.DeleteAlert(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAlertCount(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, countResponse{ActiveCount: s.monitor.ActiveCount()})
}

func (s *Server) handleEnableAudio(w http.ResponseWriter, r *http.Request) {
	s.notifier.EnableAudio()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.quotes.Snapshot())
}

func (s *Server) handleSelectSymbol(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Symbol) == "" {
		s.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	s.books.Select(body.Symbol)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	q, ok := s.quotes.Get(symbol)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown symbol")
		return
	}

	resp := marketResponse{Quote: q, Stats: stats.Compute(q)}
	if book, ok := s.books.Get(symbol); ok {
		resp.OrderBook = &book
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	q, ok := s.quotes.Get(symbol)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown symbol")
		return
	}
	book, _ := s.books.Get(symbol)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+stats.Filename(symbol, time.Now().UnixMilli())+`"`)

	if err := stats.WriteCSV(w, q, book); err != nil {
		s.log.Error("failed to write export", zap.String("symbol", symbol), zap.Error(err))
	}
}

func isValidation(err error) bool {
	return errors.Is(err, alert.ErrMissingSymbol) ||
		errors.Is(err, alert.ErrInvalidCondition) ||
		errors.Is(err, alert.ErrInvalidPrice)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
