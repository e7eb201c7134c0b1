package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps an error kind to an HTTP status. More specific kinds are
// checked before ErrExchange, which they all match.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadSymbol):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrExchange):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	kind := "InternalError"
	if k := domain.KindOf(err); k != nil {
		kind = k.Error()
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.writeJSON(w, status, errorResponse{Error: kind, Message: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "BadRequest", Message: msg})
}

// parseQuery reads the optional since (RFC3339) and limit parameters.
func parseQuery(r *http.Request) (domain.Query, error) {
	var q domain.Query
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, errors.New("since must be an RFC3339 timestamp")
		}
		q.Since = &since
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return q, errors.New("limit must be a non-negative integer")
		}
		q.Limit = limit
	}
	return q, nil
}

func (s *Server) requireSymbol(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.badRequest(w, "symbol is required")
		return "", false
	}
	return symbol, true
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "exchange": s.exchange.ID()})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := s.exchange.LoadMarkets(r.Context(), r.URL.Query().Get("reload") == "true")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, markets)
}

func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := s.exchange.Currencies(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, currencies)
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.exchange.Symbols(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, symbols)
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.requireSymbol(w, r)
	if !ok {
		return
	}
	ticker, err := s.exchange.FetchTicker(r.Context(), symbol)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ticker)
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	if v := r.URL.Query().Get("symbols"); v != "" {
		symbols = strings.Split(v, ",")
	}
	tickers, err := s.exchange.FetchTickers(r.Context(), symbols)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tickers)
}

func (s *Server) handleOrderBook(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.requireSymbol(w, r)
	if !ok {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	book, err := s.exchange.FetchOrderBook(r.Context(), symbol, q.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.requireSymbol(w, r)
	if !ok {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	trades, err := s.exchange.FetchTrades(r.Context(), symbol, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleCandles(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.requireSymbol(w, r)
	if !ok {
		return
	}
	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "1m"
	}
	q, err := parseQuery(r)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	candles, err := s.exchange.FetchOHLCV(r.Context(), symbol, timeframe, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, candles)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balances, err := s.exchange.FetchBalance(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, balances.Currencies)
}

func (s *Server) handleOpenOrders(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	orders, err := s.exchange.FetchOpenOrders(r.Context(), r.URL.Query().Get("symbol"), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.exchange.FetchOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleStreamTickers(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make(map[string]*domain.Ticker, len(s.tickers))
	for symbol, t := range s.tickers {
		out[symbol] = t
	}
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, out)
}
