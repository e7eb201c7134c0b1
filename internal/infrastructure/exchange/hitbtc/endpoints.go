package hitbtc

import "net/http"

type API string

const (
	Public  API = "public"
	Private API = "private"
)

// Endpoint is one row of the REST surface. Path may contain {placeholders}
// that the signer fills from request params.
type Endpoint struct {
	API    API
	Method string
	Path   string
}

var (
	publicSymbols   = Endpoint{Public, http.MethodGet, "symbol"}
	publicCurrency  = Endpoint{Public, http.MethodGet, "currency"}
	publicTickers   = Endpoint{Public, http.MethodGet, "ticker"}
	publicTicker    = Endpoint{Public, http.MethodGet, "ticker/{symbol}"}
	publicTrades    = Endpoint{Public, http.MethodGet, "trades/{symbol}"}
	publicOrderBook = Endpoint{Public, http.MethodGet, "orderbook/{symbol}"}
	publicCandles   = Endpoint{Public, http.MethodGet, "candles/{symbol}"}

	privateOpenOrders       = Endpoint{Private, http.MethodGet, "order"}
	privateOpenOrder        = Endpoint{Private, http.MethodGet, "order/{clientOrderId}"}
	privateTradingBalance   = Endpoint{Private, http.MethodGet, "trading/balance"}
	privateTradingFee       = Endpoint{Private, http.MethodGet, "trading/fee/{symbol}"}
	privateHistoryTrades    = Endpoint{Private, http.MethodGet, "history/trades"}
	privateHistoryOrders    = Endpoint{Private, http.MethodGet, "history/order"}
	privateOrderTrades      = Endpoint{Private, http.MethodGet, "history/order/{id}/trades"}
	privateAccountBalance   = Endpoint{Private, http.MethodGet, "account/balance"}
	privateTransactions     = Endpoint{Private, http.MethodGet, "account/transactions"}
	privateTransaction      = Endpoint{Private, http.MethodGet, "account/transactions/{id}"}
	privateDepositAddress   = Endpoint{Private, http.MethodGet, "account/crypto/address/{currency}"}
	privateCreateOrder      = Endpoint{Private, http.MethodPost, "order"}
	privateWithdraw         = Endpoint{Private, http.MethodPost, "account/crypto/withdraw"}
	privateCreateAddress    = Endpoint{Private, http.MethodPost, "account/crypto/address/{currency}"}
	privateTransfer         = Endpoint{Private, http.MethodPost, "account/transfer"}
	privateCommitWithdraw   = Endpoint{Private, http.MethodPut, "account/crypto/withdraw/{id}"}
	privateCancelAllOrders  = Endpoint{Private, http.MethodDelete, "order"}
	privateCancelOrder      = Endpoint{Private, http.MethodDelete, "order/{clientOrderId}"}
	privateRollbackWithdraw = Endpoint{Private, http.MethodDelete, "account/crypto/withdraw/{id}"}
)

// endpoints lists every call the adapter makes.
var endpoints = []Endpoint{
	publicSymbols, publicCurrency, publicTickers, publicTicker, publicTrades,
	publicOrderBook, publicCandles,
	privateOpenOrders, privateOpenOrder, privateTradingBalance, privateTradingFee,
	privateHistoryTrades, privateHistoryOrders, privateOrderTrades, privateAccountBalance,
	privateTransactions, privateTransaction, privateDepositAddress, privateCreateOrder,
	privateWithdraw, privateCreateAddress, privateTransfer, privateCommitWithdraw,
	privateCancelAllOrders, privateCancelOrder, privateRollbackWithdraw,
}
