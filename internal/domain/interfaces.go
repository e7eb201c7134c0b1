package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request is a fully built HTTP call. Body is nil when there is nothing to send.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport executes requests. Retries, pooling, timeouts and rate limiting
// live behind this interface, never in an adapter.
type Transport interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Exchange is the exchange-agnostic contract every adapter implements.
type Exchange interface {
	ID() string
	LoadMarkets(ctx context.Context, reload bool) (map[string]*Market, error)
	FetchMarkets(ctx context.Context) ([]*Market, error)
	FetchCurrencies(ctx context.Context) (map[string]*Currency, error)
	// Currencies and Symbols read the loaded catalog without refetching.
	Currencies(ctx context.Context) (map[string]*Currency, error)
	Symbols(ctx context.Context) ([]string, error)
	FetchTicker(ctx context.Context, symbol string) (*Ticker, error)
	FetchTickers(ctx context.Context, symbols []string) (map[string]*Ticker, error)
	FetchOrderBook(ctx context.Context, symbol string, limit int) (*OrderBook, error)
	FetchTrades(ctx context.Context, symbol string, q Query) ([]*Trade, error)
	FetchOHLCV(ctx context.Context, symbol, timeframe string, q Query) ([]OHLCV, error)
	FetchBalance(ctx context.Context) (*Balances, error)

	CreateOrder(ctx context.Context, symbol string, typ OrderType, side Side, amount decimal.Decimal, price decimal.NullDecimal) (*Order, error)
	CancelOrder(ctx context.Context, id string) (map[string]any, error)
	FetchOrder(ctx context.Context, id string) (*Order, error)
	FetchOpenOrders(ctx context.Context, symbol string, q Query) ([]*Order, error)
	FetchClosedOrders(ctx context.Context, symbol string, q Query) ([]*Order, error)
	FetchMyTrades(ctx context.Context, symbol string, q Query) ([]*Trade, error)

	FetchDepositAddress(ctx context.Context, code string) (*DepositAddress, error)
	Withdraw(ctx context.Context, code string, amount decimal.Decimal, address string) (*WithdrawResult, error)
}
