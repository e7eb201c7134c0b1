package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositAddress struct {
	Currency string         `json:"currency"`
	Address  string         `json:"address"`
	Tag      *string        `json:"tag"`
	Status   string         `json:"status"`
	Info     map[string]any `json:"info,omitempty"`
}

type WithdrawResult struct {
	ID   string         `json:"id"`
	Info map[string]any `json:"info,omitempty"`
}

type TransferResult struct {
	ID   string         `json:"id"`
	Info map[string]any `json:"info,omitempty"`
}

// Transaction is a deposit, withdrawal or internal transfer on the account ledger.
type Transaction struct {
	ID       string              `json:"id"`
	Currency string              `json:"currency"`
	Amount   decimal.Decimal     `json:"amount"`
	Fee      decimal.NullDecimal `json:"fee"`
	Address  *string             `json:"address"`
	Tag      *string             `json:"tag"`
	TxID     *string             `json:"txid"`
	Status   string              `json:"status"`
	Type     string              `json:"type"`
	Created  *time.Time          `json:"created"`
	Updated  *time.Time          `json:"updated"`
	Info     map[string]any      `json:"info,omitempty"`
}

type TradingFee struct {
	Symbol string          `json:"symbol"`
	Maker  decimal.Decimal `json:"maker"`
	Taker  decimal.Decimal `json:"taker"`
	Info   map[string]any  `json:"info,omitempty"`
}
