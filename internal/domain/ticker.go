package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticker is a point-in-time market snapshot. A null field means the
// exchange did not report it, which is different from zero.
type Ticker struct {
	Symbol      string              `json:"symbol"`
	Timestamp   *time.Time          `json:"timestamp"`
	Bid         decimal.NullDecimal `json:"bid"`
	Ask         decimal.NullDecimal `json:"ask"`
	High        decimal.NullDecimal `json:"high"`
	Low         decimal.NullDecimal `json:"low"`
	Open        decimal.NullDecimal `json:"open"`
	Close       decimal.NullDecimal `json:"close"`
	Last        decimal.NullDecimal `json:"last"`
	BaseVolume  decimal.NullDecimal `json:"base_volume"`
	QuoteVolume decimal.NullDecimal `json:"quote_volume"`
	Info        map[string]any      `json:"info,omitempty"`
}

// VolumeDenomination tells consumers which side of the pair OHLCV volume
// is measured in. Adapters differ here.
type VolumeDenomination string

const (
	VolumeBase  VolumeDenomination = "base"
	VolumeQuote VolumeDenomination = "quote"
)

// OHLCV is one candle: [timestamp, open, high, low, close, volume].
type OHLCV struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

type OrderBookEntry struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// OrderBook keeps levels in the order the exchange sent them.
type OrderBook struct {
	Symbol    string           `json:"symbol"`
	Timestamp *time.Time       `json:"timestamp"`
	Bids      []OrderBookEntry `json:"bids"`
	Asks      []OrderBookEntry `json:"asks"`
	Info      map[string]any   `json:"info,omitempty"`
}
