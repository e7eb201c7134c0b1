package hitbtc

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"github.com/vitos/crypto_exchange_adapter/internal/usecase"
	"go.uber.org/zap"
)

const (
	ExchangeID   = "hitbtc2"
	ExchangeName = "HitBTC v2"
	APIVersion   = "2"
	BaseURL      = "https://api.hitbtc.com"
	WSURL        = "wss://api.hitbtc.com/api/2/ws"

	// HitBTC accepts client order ids of at most 32 characters.
	clientOrderIDLength = 32
)

// Timeframes maps unified candle periods to HitBTC's.
var Timeframes = map[string]string{
	"1m":  "M1",
	"3m":  "M3",
	"5m":  "M5",
	"15m": "M15",
	"30m": "M30",
	"1h":  "H1",
	"4h":  "H4",
	"1d":  "D1",
	"1w":  "D7",
	"1M":  "1M",
}

// currencyAliases maps raw HitBTC ids to canonical codes.
var currencyAliases = map[string]string{
	"CAT": "BitClave",
}

// Balance accounts.
const (
	AccountTrading = "trading"
	AccountMain    = "account"
)

// Transfer directions between the main account and the trading account.
const (
	TransferToTrading = "bankToExchange"
	TransferToMain    = "exchangeToBank"
)

type Options struct {
	APIKey         string
	APISecret      string
	BaseURL        string
	OrderCacheSize int
	Logger         *zap.Logger

	// NewClientOrderID overrides correlation id generation.
	NewClientOrderID func() string
}

// Adapter implements domain.Exchange for HitBTC API v2.
type Adapter struct {
	id               string
	signer           *Signer
	transport        domain.Transport
	catalog          *usecase.MarketCatalog
	orders           *usecase.OrderCache
	codes            *usecase.CurrencyCodes
	logger           *zap.Logger
	newClientOrderID func() string
}

var _ domain.Exchange = (*Adapter)(nil)

func NewAdapter(transport domain.Transport, opts Options) *Adapter {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NewClientOrderID == nil {
		opts.NewClientOrderID = newClientOrderID
	}

	a := &Adapter{
		id:               ExchangeID,
		signer:           NewSigner(ExchangeID, opts.BaseURL, APIVersion, opts.APIKey, opts.APISecret),
		transport:        transport,
		orders:           usecase.NewOrderCache(opts.OrderCacheSize),
		codes:            usecase.NewCurrencyCodes(currencyAliases),
		logger:           opts.Logger.With(zap.String("exchange", ExchangeID)),
		newClientOrderID: opts.NewClientOrderID,
	}
	a.catalog = usecase.NewMarketCatalog(ExchangeID, a.loadCatalog, a.logger)
	return a
}

func newClientOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > clientOrderIDLength {
		id = id[:clientOrderIDLength]
	}
	return id
}

func (a *Adapter) ID() string { return a.id }

// OHLCVVolume reports that candle volume is quote-denominated on HitBTC.
func (a *Adapter) OHLCVVolume() domain.VolumeDenomination { return domain.VolumeQuote }

// --- transport ---

func (a *Adapter) request(ctx context.Context, ep Endpoint, params Params) ([]byte, error) {
	req, err := a.signer.Sign(ep, params)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("HitBTC request", zap.String("method", req.Method), zap.String("url", req.URL))

	resp, err := a.transport.Execute(ctx, req)
	if err != nil {
		if domain.KindOf(err) != nil {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrNetwork, a.id, err)
	}
	if err := classify(a.id, resp.StatusCode, resp.Body); err != nil {
		return nil, err
	}
	if err := checkBody(a.id, resp.Body); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (a *Adapter) requestList(ctx context.Context, ep Endpoint, params Params) ([]json.RawMessage, error) {
	body, err := a.request(ctx, ep, params)
	if err != nil {
		return nil, err
	}
	return a.decodeList(body)
}

func (a *Adapter) requestMap(ctx context.Context, ep Endpoint, params Params) (map[string]any, error) {
	body, err := a.request(ctx, ep, params)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, domain.WrapError(domain.ErrExchange, a.id, err)
	}
	return out, nil
}

// --- catalog ---

func (a *Adapter) loadCatalog(ctx context.Context) ([]*domain.Market, []*domain.Currency, error) {
	markets, err := a.FetchMarkets(ctx)
	if err != nil {
		return nil, nil, err
	}
	currencies, err := a.fetchCurrencyList(ctx)
	if err != nil {
		return nil, nil, err
	}
	return markets, currencies, nil
}

func (a *Adapter) LoadMarkets(ctx context.Context, reload bool) (map[string]*domain.Market, error) {
	if err := a.catalog.Load(ctx, reload); err != nil {
		return nil, err
	}
	return a.catalog.Markets(), nil
}

func (a *Adapter) market(ctx context.Context, symbol string) (*domain.Market, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	return a.catalog.Resolve(symbol)
}

// optionalMarket resolves symbol when it is set.
func (a *Adapter) optionalMarket(ctx context.Context, symbol string, params Params) (*domain.Market, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	if symbol == "" {
		return nil, nil
	}
	m, err := a.catalog.Resolve(symbol)
	if err != nil {
		return nil, err
	}
	params["symbol"] = m.ID
	return m, nil
}

func (a *Adapter) FetchMarkets(ctx context.Context) ([]*domain.Market, error) {
	list, err := a.requestList(ctx, publicSymbols, nil)
	if err != nil {
		return nil, err
	}
	markets := make([]*domain.Market, 0, len(list))
	for _, raw := range list {
		m, err := a.parseMarket(raw)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}

func (a *Adapter) fetchCurrencyList(ctx context.Context) ([]*domain.Currency, error) {
	list, err := a.requestList(ctx, publicCurrency, nil)
	if err != nil {
		return nil, err
	}
	currencies := make([]*domain.Currency, 0, len(list))
	for _, raw := range list {
		c, err := a.parseCurrency(raw)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, nil
}

func (a *Adapter) FetchCurrencies(ctx context.Context) (map[string]*domain.Currency, error) {
	list, err := a.fetchCurrencyList(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Currency, len(list))
	for _, c := range list {
		out[c.Code] = c
	}
	return out, nil
}

// Currencies returns the catalog's currencies keyed by canonical code.
func (a *Adapter) Currencies(ctx context.Context) (map[string]*domain.Currency, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	return a.catalog.Currencies(), nil
}

// Symbols returns every canonical market symbol, sorted.
func (a *Adapter) Symbols(ctx context.Context) ([]string, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	return a.catalog.Symbols(), nil
}

// --- market data ---

func (a *Adapter) FetchTicker(ctx context.Context, symbol string) (*domain.Ticker, error) {
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}
	body, err := a.request(ctx, publicTicker, Params{"symbol": market.ID})
	if err != nil {
		return nil, err
	}
	var probe rawTicker
	if err := json.Unmarshal(body, &probe); err == nil && probe.Message != nil {
		return nil, domain.NewError(domain.ErrExchange, a.id, "%s", *probe.Message)
	}
	return a.parseTicker(body, market)
}

// FetchTickers returns tickers keyed by symbol. An empty symbols slice
// means all markets.
func (a *Adapter) FetchTickers(ctx context.Context, symbols []string) (map[string]*domain.Ticker, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, publicTickers, nil)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}

	out := make(map[string]*domain.Ticker, len(list))
	for _, raw := range list {
		t, err := a.parseTicker(raw, nil)
		if err != nil {
			return nil, err
		}
		if !a.tickerSymbolKnown(t) {
			continue
		}
		if len(wanted) > 0 && !wanted[t.Symbol] {
			continue
		}
		out[t.Symbol] = t
	}
	return out, nil
}

// FetchOrderBook returns a snapshot; limit 0 uses the exchange default.
func (a *Adapter) FetchOrderBook(ctx context.Context, symbol string, limit int) (*domain.OrderBook, error) {
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}
	params := Params{"symbol": market.ID}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	body, err := a.request(ctx, publicOrderBook, params)
	if err != nil {
		return nil, err
	}
	return a.parseOrderBook(body, market)
}

func (a *Adapter) FetchTrades(ctx context.Context, symbol string, q domain.Query) ([]*domain.Trade, error) {
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}
	params := Params{"symbol": market.ID}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	list, err := a.requestList(ctx, publicTrades, params)
	if err != nil {
		return nil, err
	}
	return a.parseTrades(list, market, q)
}

func (a *Adapter) FetchOHLCV(ctx context.Context, symbol, timeframe string, q domain.Query) ([]domain.OHLCV, error) {
	period, ok := Timeframes[timeframe]
	if !ok {
		return nil, domain.NewError(domain.ErrExchange, a.id, "unsupported timeframe %s", timeframe)
	}
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}
	params := Params{"symbol": market.ID, "period": period}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	list, err := a.requestList(ctx, publicCandles, params)
	if err != nil {
		return nil, err
	}
	candles := make([]domain.OHLCV, 0, len(list))
	for _, raw := range list {
		c, err := a.parseOHLCV(raw)
		if err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}
	return filterBySinceLimit(candles, func(c domain.OHLCV) *time.Time { return &c.Timestamp }, q), nil
}

// --- account ---

func (a *Adapter) FetchBalance(ctx context.Context) (*domain.Balances, error) {
	return a.FetchBalanceOf(ctx, AccountTrading)
}

// FetchBalanceOf reads the trading or the main account.
func (a *Adapter) FetchBalanceOf(ctx context.Context, account string) (*domain.Balances, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	ep := privateTradingBalance
	switch account {
	case "", AccountTrading:
	case AccountMain:
		ep = privateAccountBalance
	default:
		return nil, domain.NewError(domain.ErrExchange, a.id, "unknown balance account %s", account)
	}
	body, err := a.request(ctx, ep, nil)
	if err != nil {
		return nil, err
	}
	return a.parseBalances(body)
}

func (a *Adapter) FetchTradingFee(ctx context.Context, symbol string) (*domain.TradingFee, error) {
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}
	body, err := a.request(ctx, privateTradingFee, Params{"symbol": market.ID})
	if err != nil {
		return nil, err
	}
	var r rawTradingFee
	info, err := a.decode(body, &r)
	if err != nil {
		return nil, err
	}
	taker, err := a.requiredDecimal("takeLiquidityRate", r.TakeLiquidityRate)
	if err != nil {
		return nil, err
	}
	maker, err := a.requiredDecimal("provideLiquidityRate", r.ProvideLiquidityRate)
	if err != nil {
		return nil, err
	}
	return &domain.TradingFee{Symbol: market.Symbol, Maker: maker, Taker: taker, Info: info}, nil
}

// CalculateFee estimates the fee of a prospective order from the market's
// maker or taker rate. The fee is charged in the quote currency.
func (a *Adapter) CalculateFee(ctx context.Context, symbol string, amount, price decimal.Decimal, maker bool) (*domain.Fee, error) {
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}
	rate := market.Taker
	if maker {
		rate = market.Maker
	}
	cost := domain.Truncate(amount.Mul(price).Mul(rate), domain.FeePrecision)
	quote := market.Quote
	return &domain.Fee{Cost: cost, Currency: &quote}, nil
}

// --- orders ---

// CreateOrder submits an order under a fresh correlation id. Amount and
// price are truncated to the market's precision. The parsed result is cached
// so later responses without a price can be backfilled.
func (a *Adapter) CreateOrder(ctx context.Context, symbol string, typ domain.OrderType, side domain.Side, amount decimal.Decimal, price decimal.NullDecimal) (*domain.Order, error) {
	market, err := a.market(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quantity := domain.Truncate(amount, market.Precision.Amount)
	if quantity.Sign() <= 0 {
		return nil, domain.NewError(domain.ErrInvalidOrder, a.id, "order amount %s is below precision of %s", amount, symbol)
	}

	params := Params{
		"clientOrderId": a.newClientOrderID(),
		"symbol":        market.ID,
		"side":          normalizeSide(side),
		"quantity":      quantity.String(),
		"type":          string(typ),
	}
	if typ == domain.OrderTypeLimit {
		if !price.Valid {
			return nil, domain.NewError(domain.ErrInvalidOrder, a.id, "limit order on %s requires a price", symbol)
		}
		params["price"] = domain.ToPrecision(price.Decimal, market.Precision.Price)
	} else {
		params["timeInForce"] = "FOK"
	}

	body, err := a.request(ctx, privateCreateOrder, params)
	if err != nil {
		return nil, err
	}
	order, err := a.parseOrder(body, market)
	if err != nil {
		return nil, err
	}
	a.orders.Put(order)

	a.logger.Info("Order created",
		zap.String("id", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.String("status", string(order.Status)))
	return order, nil
}

// CancelOrder cancels by correlation id and returns the raw acknowledgement.
func (a *Adapter) CancelOrder(ctx context.Context, id string) (map[string]any, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	return a.requestMap(ctx, privateCancelOrder, Params{"clientOrderId": id})
}

// CancelAllOrders cancels every open order, or those of one symbol.
func (a *Adapter) CancelAllOrders(ctx context.Context, symbol string) ([]*domain.Order, error) {
	params := Params{}
	market, err := a.optionalMarket(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, privateCancelAllOrders, params)
	if err != nil {
		return nil, err
	}
	return a.parseOrders(list, market, domain.Query{})
}

// FetchOrder looks the correlation id up in order history.
func (a *Adapter) FetchOrder(ctx context.Context, id string) (*domain.Order, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, privateHistoryOrders, Params{"clientOrderId": id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NewError(domain.ErrOrderNotFound, a.id, "order %s not found", id)
	}
	order, err := a.parseOrder(list[0], nil)
	if err != nil {
		return nil, err
	}
	a.orders.Put(order)
	return order, nil
}

// FetchOpenOrder reads a single active order by correlation id.
func (a *Adapter) FetchOpenOrder(ctx context.Context, id string) (*domain.Order, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	body, err := a.request(ctx, privateOpenOrder, Params{"clientOrderId": id})
	if err != nil {
		return nil, err
	}
	order, err := a.parseOrder(body, nil)
	if err != nil {
		return nil, err
	}
	a.orders.Put(order)
	return order, nil
}

func (a *Adapter) FetchOpenOrders(ctx context.Context, symbol string, q domain.Query) ([]*domain.Order, error) {
	params := Params{}
	market, err := a.optionalMarket(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, privateOpenOrders, params)
	if err != nil {
		return nil, err
	}
	return a.parseOrders(list, market, q)
}

func (a *Adapter) FetchClosedOrders(ctx context.Context, symbol string, q domain.Query) ([]*domain.Order, error) {
	params := queryParams(q)
	market, err := a.optionalMarket(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, privateHistoryOrders, params)
	if err != nil {
		return nil, err
	}
	return a.parseOrders(list, market, q)
}

func (a *Adapter) FetchMyTrades(ctx context.Context, symbol string, q domain.Query) ([]*domain.Trade, error) {
	params := queryParams(q)
	market, err := a.optionalMarket(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, privateHistoryTrades, params)
	if err != nil {
		return nil, err
	}
	return a.parseTrades(list, market, q)
}

// FetchOrderTrades takes the exchange's own order id (Order.ExchangeID),
// not the correlation id.
func (a *Adapter) FetchOrderTrades(ctx context.Context, exchangeOrderID string) ([]*domain.Trade, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	list, err := a.requestList(ctx, privateOrderTrades, Params{"id": exchangeOrderID})
	if err != nil {
		return nil, err
	}
	return a.parseTrades(list, nil, domain.Query{})
}

func queryParams(q domain.Query) Params {
	params := Params{}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Since != nil {
		params["from"] = iso8601(*q.Since)
	}
	return params
}

// --- funding ---

func (a *Adapter) CreateDepositAddress(ctx context.Context, code string) (*domain.DepositAddress, error) {
	return a.depositAddress(ctx, privateCreateAddress, code)
}

func (a *Adapter) FetchDepositAddress(ctx context.Context, code string) (*domain.DepositAddress, error) {
	return a.depositAddress(ctx, privateDepositAddress, code)
}

func (a *Adapter) depositAddress(ctx context.Context, ep Endpoint, code string) (*domain.DepositAddress, error) {
	body, err := a.request(ctx, ep, Params{"currency": a.codes.ID(code)})
	if err != nil {
		return nil, err
	}
	var r rawAddress
	info, err := a.decode(body, &r)
	if err != nil {
		return nil, err
	}
	return &domain.DepositAddress{
		Currency: code,
		Address:  r.Address,
		Tag:      r.PaymentID,
		Status:   "ok",
		Info:     info,
	}, nil
}

func (a *Adapter) Withdraw(ctx context.Context, code string, amount decimal.Decimal, address string) (*domain.WithdrawResult, error) {
	if err := a.catalog.Load(ctx, false); err != nil {
		return nil, err
	}
	currency, err := a.catalog.Currency(code)
	if err != nil {
		return nil, err
	}
	body, err := a.request(ctx, privateWithdraw, Params{
		"currency": currency.ID,
		"amount":   domain.ToPrecision(amount, currency.Precision),
		"address":  address,
	})
	if err != nil {
		return nil, err
	}
	var r rawID
	info, err := a.decode(body, &r)
	if err != nil {
		return nil, err
	}
	return &domain.WithdrawResult{ID: string(r.ID), Info: info}, nil
}

// CommitWithdraw confirms a withdrawal created with autoCommit disabled.
func (a *Adapter) CommitWithdraw(ctx context.Context, id string) (bool, error) {
	return a.withdrawDecision(ctx, privateCommitWithdraw, id)
}

func (a *Adapter) RollbackWithdraw(ctx context.Context, id string) (bool, error) {
	return a.withdrawDecision(ctx, privateRollbackWithdraw, id)
}

func (a *Adapter) withdrawDecision(ctx context.Context, ep Endpoint, id string) (bool, error) {
	body, err := a.request(ctx, ep, Params{"id": id})
	if err != nil {
		return false, err
	}
	var r rawResult
	if _, err := a.decode(body, &r); err != nil {
		return false, err
	}
	return r.Result, nil
}

// FetchTransactions lists ledger entries, optionally for one currency code.
func (a *Adapter) FetchTransactions(ctx context.Context, code string, q domain.Query) ([]*domain.Transaction, error) {
	params := Params{}
	if code != "" {
		params["currency"] = a.codes.ID(code)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	list, err := a.requestList(ctx, privateTransactions, params)
	if err != nil {
		return nil, err
	}
	txs := make([]*domain.Transaction, 0, len(list))
	for _, raw := range list {
		tx, err := a.parseTransaction(raw)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return filterBySinceLimit(txs, func(t *domain.Transaction) *time.Time { return t.Created }, q), nil
}

func (a *Adapter) FetchTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	body, err := a.request(ctx, privateTransaction, Params{"id": id})
	if err != nil {
		return nil, err
	}
	return a.parseTransaction(body)
}

// Transfer moves funds between the main and the trading account.
func (a *Adapter) Transfer(ctx context.Context, code string, amount decimal.Decimal, direction string) (*domain.TransferResult, error) {
	if direction != TransferToTrading && direction != TransferToMain {
		return nil, domain.NewError(domain.ErrExchange, a.id, "unknown transfer direction %s", direction)
	}
	body, err := a.request(ctx, privateTransfer, Params{
		"currency": a.codes.ID(code),
		"amount":   amount.String(),
		"type":     direction,
	})
	if err != nil {
		return nil, err
	}
	var r rawID
	info, err := a.decode(body, &r)
	if err != nil {
		return nil, err
	}
	return &domain.TransferResult{ID: string(r.ID), Info: info}, nil
}
