package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"go.uber.org/zap"
)

type Server struct {
	router   *http.ServeMux
	server   *http.Server
	exchange domain.Exchange
	logger   *zap.Logger

	mu      sync.RWMutex
	tickers map[string]*domain.Ticker
}

func NewServer(port int, exchange domain.Exchange, logger *zap.Logger) *Server {
	s := &Server{
		router:   http.NewServeMux(),
		exchange: exchange,
		logger:   logger,
		tickers:  make(map[string]*domain.Ticker),
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /status", s.handleStatus)

	// Catalog
	s.router.HandleFunc("GET /api/markets", s.handleMarkets)
	s.router.HandleFunc("GET /api/currencies", s.handleCurrencies)
	s.router.HandleFunc("GET /api/symbols", s.handleSymbols)

	// Market data
	s.router.HandleFunc("GET /api/ticker", s.handleTicker)
	s.router.HandleFunc("GET /api/tickers", s.handleTickers)
	s.router.HandleFunc("GET /api/orderbook", s.handleOrderBook)
	s.router.HandleFunc("GET /api/trades", s.handleTrades)
	s.router.HandleFunc("GET /api/candles", s.handleCandles)

	// Account
	s.router.HandleFunc("GET /api/balance", s.handleBalance)
	s.router.HandleFunc("GET /api/orders/open", s.handleOpenOrders)
	s.router.HandleFunc("GET /api/orders/{id}", s.handleOrder)

	// Live tickers pushed by the stream
	s.router.HandleFunc("GET /api/stream/tickers", s.handleStreamTickers)
}

// OnTicker records the latest streamed ticker per symbol.
func (s *Server) OnTicker(t *domain.Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickers[t.Symbol] = t
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
