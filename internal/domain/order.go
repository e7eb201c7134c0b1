package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"
)

// OrderStatus is open, closed or canceled. Statuses an adapter cannot map
// are passed through unchanged.
type OrderStatus string

const (
	OrderStatusOpen     OrderStatus = "open"
	OrderStatusClosed   OrderStatus = "closed"
	OrderStatusCanceled OrderStatus = "canceled"
)

type Fee struct {
	Cost     decimal.Decimal `json:"cost"`
	Currency *string         `json:"currency"`
}

// Trade is an executed fill, public or private.
type Trade struct {
	ID        string          `json:"id"`
	Order     *string         `json:"order"`
	Timestamp *time.Time      `json:"timestamp"`
	Symbol    string          `json:"symbol"`
	Side      Side            `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Cost      decimal.Decimal `json:"cost"`
	Fee       *Fee            `json:"fee"`
	Info      map[string]any  `json:"info,omitempty"`
}

// Order is identified by the client-side correlation id; ExchangeID is the
// exchange's own identifier when it reports one.
type Order struct {
	ID          string              `json:"id"`
	ExchangeID  string              `json:"exchange_id,omitempty"`
	Timestamp   *time.Time          `json:"timestamp"`
	Created     *time.Time          `json:"created"`
	Updated     *time.Time          `json:"updated"`
	Status      OrderStatus         `json:"status"`
	Symbol      string              `json:"symbol"`
	Type        OrderType           `json:"type"`
	Side        Side                `json:"side"`
	TimeInForce string              `json:"time_in_force,omitempty"`
	Price       decimal.NullDecimal `json:"price"`
	Amount      decimal.NullDecimal `json:"amount"`
	Filled      decimal.NullDecimal `json:"filled"`
	Remaining   decimal.NullDecimal `json:"remaining"`
	Cost        decimal.NullDecimal `json:"cost"`
	Fee         *Fee                `json:"fee"`
	Info        map[string]any      `json:"info,omitempty"`
}

// Query narrows list endpoints. Zero values mean "no filter".
type Query struct {
	Since *time.Time
	Limit int
}
