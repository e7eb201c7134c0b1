package hitbtc

import (
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"go.uber.org/zap"
)

var orderStatuses = map[string]domain.OrderStatus{
	"new":             domain.OrderStatusOpen,
	"suspended":       domain.OrderStatusOpen,
	"partiallyFilled": domain.OrderStatusOpen,
	"filled":          domain.OrderStatusClosed,
	"canceled":        domain.OrderStatusCanceled,
}

func parseOrderStatus(status string) domain.OrderStatus {
	if s, ok := orderStatuses[status]; ok {
		return s
	}
	return domain.OrderStatus(status)
}

// parse8601 returns nil for absent or unparseable timestamps.
func parse8601(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func iso8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// nullDecimal degrades absent or malformed values to null.
func nullDecimal(v *rawString) decimal.NullDecimal {
	d, err := domain.ParseNullDecimal(v.ptr())
	if err != nil {
		return decimal.NullDecimal{}
	}
	return d
}

func (a *Adapter) requiredDecimal(field string, v *rawString) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Decimal{}, domain.NewError(domain.ErrExchange, a.id, "malformed response: missing %s", field)
	}
	d, err := domain.ParseDecimal(string(*v))
	if err != nil {
		return decimal.Decimal{}, domain.NewError(domain.ErrExchange, a.id, "malformed response: bad %s %q", field, string(*v))
	}
	return d, nil
}

func (a *Adapter) decode(raw []byte, v any) (map[string]any, error) {
	info, err := decodeRecord(raw, v)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExchange, a.id, err)
	}
	return info, nil
}

func (a *Adapter) decodeList(body []byte) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, domain.WrapError(domain.ErrExchange, a.id, err)
	}
	return list, nil
}

func (a *Adapter) parseMarket(raw []byte) (*domain.Market, error) {
	var r rawSymbol
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}
	lot, err := a.requiredDecimal("quantityIncrement", r.QuantityIncrement)
	if err != nil {
		return nil, err
	}
	step, err := a.requiredDecimal("tickSize", r.TickSize)
	if err != nil {
		return nil, err
	}
	taker := defaultTaker
	if v := nullDecimal(r.TakeLiquidityRate); v.Valid {
		taker = v.Decimal
	}
	maker := defaultMaker
	if v := nullDecimal(r.ProvideLiquidityRate); v.Valid {
		maker = v.Decimal
	}

	base := a.codes.Common(r.BaseCurrency)
	quote := a.codes.Common(r.QuoteCurrency)

	m := &domain.Market{
		ID:      r.ID,
		Symbol:  a.codes.Symbol(r.BaseCurrency, r.QuoteCurrency),
		Base:    base,
		Quote:   quote,
		BaseID:  r.BaseCurrency,
		QuoteID: r.QuoteCurrency,
		Active:  true,
		Precision: domain.Precision{
			Price:  domain.PrecisionFromString(string(*r.TickSize)),
			Amount: domain.PrecisionFromString(string(*r.QuantityIncrement)),
		},
		Lot:        lot,
		Step:       step,
		Maker:      maker,
		Taker:      taker,
		Percentage: true,
		Info:       info,
	}
	m.Limits.Amount.Min = decimal.NewNullDecimal(lot)
	m.Limits.Price.Min = decimal.NewNullDecimal(step)
	m.Limits.Cost.Min = decimal.NewNullDecimal(lot.Mul(step))
	return m, nil
}

const currencyPrecision = 8

func (a *Adapter) parseCurrency(raw []byte) (*domain.Currency, error) {
	var r rawCurrency
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}

	status := "ok"
	if r.Disabled != nil && *r.Disabled {
		status = "disabled"
	}
	typ := domain.CurrencyFiat
	if r.Crypto {
		typ = domain.CurrencyCrypto
	}

	lo := decimal.NewNullDecimal(decimal.New(1, -currencyPrecision))
	hi := decimal.NewNullDecimal(decimal.New(1, currencyPrecision))

	c := &domain.Currency{
		ID:          r.ID,
		Code:        a.codes.Common(r.ID),
		Name:        r.FullName,
		Type:        typ,
		Payin:       r.PayinEnabled,
		Payout:      r.PayoutEnabled,
		Transfer:    r.TransferEnabled,
		Active:      r.PayinEnabled && r.PayoutEnabled && r.TransferEnabled,
		Status:      status,
		Precision:   currencyPrecision,
		WithdrawFee: withdrawFee(r.ID),
		Info:        info,
	}
	c.Limits.Amount = domain.MinMax{Min: lo, Max: hi}
	c.Limits.Price = domain.MinMax{Min: lo, Max: hi}
	c.Limits.Withdraw.Max = hi
	return c, nil
}

// marketSymbol prefers the given market, then a catalog lookup by id, and
// finally falls back to the raw id.
func (a *Adapter) marketSymbol(market *domain.Market, id string) (*domain.Market, string) {
	if market != nil {
		return market, market.Symbol
	}
	if m, err := a.catalog.ResolveByID(id); err == nil {
		return m, m.Symbol
	}
	return nil, id
}

func (a *Adapter) parseTicker(raw []byte, market *domain.Market) (*domain.Ticker, error) {
	var r rawTicker
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}
	_, symbol := a.marketSymbol(market, r.Symbol)
	return &domain.Ticker{
		Symbol:      symbol,
		Timestamp:   parse8601(r.Timestamp),
		High:        nullDecimal(r.High),
		Low:         nullDecimal(r.Low),
		Bid:         nullDecimal(r.Bid),
		Ask:         nullDecimal(r.Ask),
		Open:        nullDecimal(r.Open),
		Close:       nullDecimal(r.Close),
		Last:        nullDecimal(r.Last),
		BaseVolume:  nullDecimal(r.Volume),
		QuoteVolume: nullDecimal(r.VolumeQuote),
		Info:        info,
	}, nil
}

func (a *Adapter) parseTrade(raw []byte, market *domain.Market) (*domain.Trade, error) {
	var r rawTrade
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}
	market, symbol := a.marketSymbol(market, r.Symbol)

	price, err := a.requiredDecimal("price", r.Price)
	if err != nil {
		return nil, err
	}
	amount, err := a.requiredDecimal("quantity", r.Quantity)
	if err != nil {
		return nil, err
	}

	var fee *domain.Fee
	if r.Fee != nil {
		cost, err := a.requiredDecimal("fee", r.Fee)
		if err != nil {
			return nil, err
		}
		fee = &domain.Fee{Cost: cost}
		if market != nil {
			quote := market.Quote
			fee.Currency = &quote
		}
	}

	return &domain.Trade{
		ID:        string(r.ID),
		Order:     r.ClientOrderID,
		Timestamp: parse8601(r.Timestamp),
		Symbol:    symbol,
		Side:      domain.Side(r.Side),
		Price:     price,
		Amount:    amount,
		Cost:      price.Mul(amount),
		Fee:       fee,
		Info:      info,
	}, nil
}

// parseOrder needs a market; without one the raw symbol id must be known
// to the catalog.
func (a *Adapter) parseOrder(raw []byte, market *domain.Market) (*domain.Order, error) {
	var r rawOrder
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}
	if market == nil {
		if market, err = a.catalog.ResolveByID(r.Symbol); err != nil {
			return nil, err
		}
	}

	id := string(r.ClientOrderID)
	amount := nullDecimal(r.Quantity)
	filled := nullDecimal(r.CumQuantity)
	price := nullDecimal(r.Price)
	if !price.Valid {
		if cached, ok := a.orders.Get(id); ok && cached.Price.Valid {
			price = cached.Price
		}
	}

	var remaining, cost decimal.NullDecimal
	if amount.Valid && filled.Valid {
		remaining = decimal.NewNullDecimal(amount.Decimal.Sub(filled.Decimal))
	}
	if filled.Valid && price.Valid {
		cost = decimal.NewNullDecimal(filled.Decimal.Mul(price.Decimal))
	}

	created := parse8601(r.CreatedAt)
	o := &domain.Order{
		ID:          id,
		Timestamp:   created,
		Created:     created,
		Updated:     parse8601(r.UpdatedAt),
		Status:      parseOrderStatus(r.Status),
		Symbol:      market.Symbol,
		Type:        domain.OrderType(r.Type),
		Side:        domain.Side(r.Side),
		TimeInForce: r.TimeInForce,
		Price:       price,
		Amount:      amount,
		Filled:      filled,
		Remaining:   remaining,
		Cost:        cost,
		Info:        info,
	}
	if r.ID != nil {
		o.ExchangeID = string(*r.ID)
	}
	return o, nil
}

// parseOHLCV reports quote-denominated volume; see Adapter.OHLCVVolume.
func (a *Adapter) parseOHLCV(raw []byte) (domain.OHLCV, error) {
	var r rawCandle
	if _, err := a.decode(raw, &r); err != nil {
		return domain.OHLCV{}, err
	}
	ts := parse8601(r.Timestamp)
	if ts == nil {
		return domain.OHLCV{}, domain.NewError(domain.ErrExchange, a.id, "malformed response: candle without timestamp")
	}
	fields := []struct {
		name string
		v    *rawString
	}{
		{"open", r.Open}, {"max", r.Max}, {"min", r.Min}, {"close", r.Close}, {"volumeQuote", r.VolumeQuote},
	}
	values := make([]decimal.Decimal, len(fields))
	for i, f := range fields {
		d, err := a.requiredDecimal(f.name, f.v)
		if err != nil {
			return domain.OHLCV{}, err
		}
		values[i] = d
	}
	return domain.OHLCV{
		Timestamp: *ts,
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
	}, nil
}

// parseBalances computes totals locally; any total the exchange sends is ignored.
func (a *Adapter) parseBalances(body []byte) (*domain.Balances, error) {
	list, err := a.decodeList(body)
	if err != nil {
		return nil, err
	}
	result := &domain.Balances{
		Currencies: make(map[string]domain.Balance, len(list)),
		Info:       make([]map[string]any, 0, len(list)),
	}
	for _, raw := range list {
		var r rawBalance
		info, err := a.decode(raw, &r)
		if err != nil {
			return nil, err
		}
		free, err := a.requiredDecimal("available", r.Available)
		if err != nil {
			return nil, err
		}
		used, err := a.requiredDecimal("reserved", r.Reserved)
		if err != nil {
			return nil, err
		}
		result.Currencies[a.codes.Common(r.Currency)] = domain.NewBalance(free, used)
		result.Info = append(result.Info, info)
	}
	return result, nil
}

func (a *Adapter) parseOrderBook(raw []byte, market *domain.Market) (*domain.OrderBook, error) {
	var r rawOrderBook
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}
	bids, err := a.parseBookSide(r.Bid)
	if err != nil {
		return nil, err
	}
	asks, err := a.parseBookSide(r.Ask)
	if err != nil {
		return nil, err
	}
	return &domain.OrderBook{
		Symbol:    market.Symbol,
		Timestamp: parse8601(r.Timestamp),
		Bids:      bids,
		Asks:      asks,
		Info:      info,
	}, nil
}

func (a *Adapter) parseBookSide(levels []rawBookLevel) ([]domain.OrderBookEntry, error) {
	out := make([]domain.OrderBookEntry, 0, len(levels))
	for _, l := range levels {
		price, err := a.requiredDecimal("price", l.Price)
		if err != nil {
			return nil, err
		}
		size, err := a.requiredDecimal("size", l.Size)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.OrderBookEntry{Price: price, Amount: size})
	}
	return out, nil
}

func (a *Adapter) parseTransaction(raw []byte) (*domain.Transaction, error) {
	var r rawTransaction
	info, err := a.decode(raw, &r)
	if err != nil {
		return nil, err
	}
	amount, err := a.requiredDecimal("amount", r.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Transaction{
		ID:       string(r.ID),
		Currency: a.codes.Common(r.Currency),
		Amount:   amount,
		Fee:      nullDecimal(r.Fee),
		Address:  r.Address,
		Tag:      r.PaymentID,
		TxID:     r.Hash,
		Status:   r.Status,
		Type:     r.Type,
		Created:  parse8601(r.CreatedAt),
		Updated:  parse8601(r.UpdatedAt),
		Info:     info,
	}, nil
}

func (a *Adapter) parseTrades(list []json.RawMessage, market *domain.Market, q domain.Query) ([]*domain.Trade, error) {
	trades := make([]*domain.Trade, 0, len(list))
	for _, raw := range list {
		t, err := a.parseTrade(raw, market)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return filterBySinceLimit(trades, func(t *domain.Trade) *time.Time { return t.Timestamp }, q), nil
}

func (a *Adapter) parseOrders(list []json.RawMessage, market *domain.Market, q domain.Query) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(list))
	for _, raw := range list {
		o, err := a.parseOrder(raw, market)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return filterBySinceLimit(orders, func(o *domain.Order) *time.Time { return o.Timestamp }, q), nil
}

// filterBySinceLimit sorts by timestamp, oldest first, then keeps items at
// or after q.Since, at most q.Limit of them. Undated items sort first and
// are dropped when Since is set.
func filterBySinceLimit[T any](items []T, ts func(T) *time.Time, q domain.Query) []T {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := ts(items[i]), ts(items[j])
		if ti == nil || tj == nil {
			return ti == nil && tj != nil
		}
		return ti.Before(*tj)
	})
	if q.Since != nil {
		kept := items[:0]
		for _, it := range items {
			if t := ts(it); t != nil && !t.Before(*q.Since) {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items
}

// tickerSymbolKnown reports whether a parsed ticker resolved to a catalog market.
func (a *Adapter) tickerSymbolKnown(t *domain.Ticker) bool {
	if _, err := a.catalog.Resolve(t.Symbol); err != nil {
		a.logger.Debug("Skipping ticker for unknown market", zap.String("id", t.Symbol))
		return false
	}
	return true
}

func normalizeSide(side domain.Side) string {
	return strings.ToLower(string(side))
}
