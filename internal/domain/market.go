package domain

import "github.com/shopspring/decimal"

// MinMax is an inclusive range where either bound may be unknown.
type MinMax struct {
	Min decimal.NullDecimal `json:"min"`
	Max decimal.NullDecimal `json:"max"`
}

type Precision struct {
	Price  int32 `json:"price"`
	Amount int32 `json:"amount"`
}

type MarketLimits struct {
	Amount MinMax `json:"amount"`
	Price  MinMax `json:"price"`
	Cost   MinMax `json:"cost"`
}

// Market describes one tradable pair. ID is the exchange-native symbol,
// Symbol the canonical "BASE/QUOTE" form.
type Market struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Base       string          `json:"base"`
	Quote      string          `json:"quote"`
	BaseID     string          `json:"base_id"`
	QuoteID    string          `json:"quote_id"`
	Active     bool            `json:"active"`
	Precision  Precision       `json:"precision"`
	Limits     MarketLimits    `json:"limits"`
	Lot        decimal.Decimal `json:"lot"`
	Step       decimal.Decimal `json:"step"`
	Maker      decimal.Decimal `json:"maker"`
	Taker      decimal.Decimal `json:"taker"`
	Percentage bool            `json:"percentage"`
	TierBased  bool            `json:"tier_based"`
	Info       map[string]any  `json:"info,omitempty"`
}

type CurrencyType string

const (
	CurrencyCrypto CurrencyType = "crypto"
	CurrencyFiat   CurrencyType = "fiat"
)

type CurrencyLimits struct {
	Amount   MinMax `json:"amount"`
	Price    MinMax `json:"price"`
	Cost     MinMax `json:"cost"`
	Withdraw MinMax `json:"withdraw"`
}

// Currency is an asset known to the exchange. Active is true only when
// deposits, withdrawals and internal transfers are all enabled.
type Currency struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Type        CurrencyType        `json:"type"`
	Payin       bool                `json:"payin"`
	Payout      bool                `json:"payout"`
	Transfer    bool                `json:"transfer"`
	Active      bool                `json:"active"`
	Status      string              `json:"status"`
	Precision   int32               `json:"precision"`
	Limits      CurrencyLimits      `json:"limits"`
	WithdrawFee decimal.NullDecimal `json:"withdraw_fee"`
	Info        map[string]any      `json:"info,omitempty"`
}
