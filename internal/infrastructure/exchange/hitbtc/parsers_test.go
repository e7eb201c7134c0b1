package hitbtc

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
)

func TestParseMarket(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	m, err := a.catalog.Resolve("ETH/BTC")
	require.NoError(t, err)
	assert.Equal(t, "ETHBTC", m.ID)
	assert.Equal(t, int32(4), m.Precision.Amount)
	assert.Equal(t, int32(6), m.Precision.Price)
	assert.Equal(t, "0.0001", m.Limits.Amount.Min.Decimal.String())
	assert.Equal(t, "0.000001", m.Limits.Price.Min.Decimal.String())
	assert.Equal(t, "0.0000000001", m.Limits.Cost.Min.Decimal.String())
	assert.True(t, m.Percentage)

	// aliased base, default fees
	cat, err := a.catalog.ResolveByID("CATBTC")
	require.NoError(t, err)
	assert.Equal(t, "BitClave/BTC", cat.Symbol)
	assert.Equal(t, "CAT", cat.BaseID)
	assert.True(t, cat.Taker.Equal(defaultTaker))
	assert.True(t, cat.Maker.Equal(defaultMaker))
	assert.Equal(t, int32(0), cat.Precision.Amount)
}

func TestParseMarket_MissingIncrement(t *testing.T) {
	a := newTestAdapter(t, newFakeTransport())
	_, err := a.parseMarket([]byte(`{"id":"ETHBTC","baseCurrency":"ETH","quoteCurrency":"BTC","tickSize":"0.1"}`))
	assert.ErrorIs(t, err, domain.ErrExchange)
}

func TestParseCurrency(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	btc, err := a.catalog.Currency("BTC")
	require.NoError(t, err)
	assert.True(t, btc.Active)
	assert.Equal(t, domain.CurrencyCrypto, btc.Type)
	assert.Equal(t, int32(8), btc.Precision)
	assert.Equal(t, "0.0009", btc.WithdrawFee.Decimal.String())

	eth, err := a.catalog.Currency("ETH")
	require.NoError(t, err)
	assert.False(t, eth.Active)

	_, err = a.catalog.Currency("BitClave")
	assert.NoError(t, err)
}

func TestParseTrade_WithoutMarketOrFee(t *testing.T) {
	a := newTestAdapter(t, newFakeTransport())

	trade, err := a.parseTrade([]byte(`{"id":1,"price":"10.5","quantity":"2","side":"buy"}`), nil)
	require.NoError(t, err)

	assert.Equal(t, "1", trade.ID)
	assert.Equal(t, "21", trade.Cost.String())
	assert.Nil(t, trade.Fee)
	assert.Nil(t, trade.Timestamp)
	assert.Equal(t, "", trade.Symbol)
	assert.Equal(t, domain.SideBuy, trade.Side)
	assert.Equal(t, float64(1), trade.Info["id"])
}

func TestParseTrade_UnknownMarketKeepsRawID(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	trade, err := a.parseTrade([]byte(`{"id":1,"symbol":"XYZUSD","price":"10.5","quantity":"2","side":"buy","fee":"0.01"}`), nil)
	require.NoError(t, err)

	assert.Equal(t, "XYZUSD", trade.Symbol)
	assert.Equal(t, "21", trade.Cost.String())
	require.NotNil(t, trade.Fee)
	assert.Nil(t, trade.Fee.Currency)
}

func TestParseTrade_FeeInQuoteCurrency(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	raw := `{"id":9,"clientOrderId":"cid-1","orderId":28102855,"symbol":"ETHBTC","side":"sell",
		"quantity":"0.5","price":"0.04","fee":"0.00002","timestamp":"2017-10-20T12:29:43.166Z"}`
	trade, err := a.parseTrade([]byte(raw), nil)
	require.NoError(t, err)

	assert.Equal(t, "ETH/BTC", trade.Symbol)
	require.NotNil(t, trade.Fee)
	assert.Equal(t, "0.00002", trade.Fee.Cost.String())
	require.NotNil(t, trade.Fee.Currency)
	assert.Equal(t, "BTC", *trade.Fee.Currency)
	require.NotNil(t, trade.Order)
	assert.Equal(t, "cid-1", *trade.Order)
	require.NotNil(t, trade.Timestamp)
	assert.True(t, time.Date(2017, 10, 20, 12, 29, 43, 166_000_000, time.UTC).Equal(*trade.Timestamp))
}

func TestParseTrade_MissingPrice(t *testing.T) {
	a := newTestAdapter(t, newFakeTransport())
	_, err := a.parseTrade([]byte(`{"id":1,"quantity":"2"}`), nil)
	assert.ErrorIs(t, err, domain.ErrExchange)
}

func TestParseOrder(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	raw := `{"id":840450210,"clientOrderId":"c1a6d30e","symbol":"ETHBTC","side":"sell","status":"partiallyFilled",
		"type":"limit","timeInForce":"GTC","quantity":"0.02","price":"0.046001","cumQuantity":"0.005",
		"createdAt":"2017-05-12T17:17:57.437Z","updatedAt":"2017-05-12T17:18:08.610Z"}`
	order, err := a.parseOrder([]byte(raw), nil)
	require.NoError(t, err)

	assert.Equal(t, "c1a6d30e", order.ID)
	assert.Equal(t, "840450210", order.ExchangeID)
	assert.Equal(t, "ETH/BTC", order.Symbol)
	assert.Equal(t, domain.OrderStatusOpen, order.Status)
	assert.Equal(t, "0.015", order.Remaining.Decimal.String())
	assert.Equal(t, "0.000230005", order.Cost.Decimal.String())
	require.NotNil(t, order.Timestamp)
	assert.Equal(t, order.Created, order.Timestamp)
	assert.NotNil(t, order.Updated)
}

func TestParseOrder_Statuses(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	tests := map[string]domain.OrderStatus{
		"new":             domain.OrderStatusOpen,
		"suspended":       domain.OrderStatusOpen,
		"partiallyFilled": domain.OrderStatusOpen,
		"filled":          domain.OrderStatusClosed,
		"canceled":        domain.OrderStatusCanceled,
		"expired":         domain.OrderStatus("expired"),
	}
	for raw, want := range tests {
		body, _ := json.Marshal(map[string]string{"clientOrderId": "x", "symbol": "ETHBTC", "status": raw})
		order, err := a.parseOrder(body, nil)
		require.NoError(t, err)
		assert.Equal(t, want, order.Status, raw)
	}
}

func TestParseOrder_MissingFieldsStayNull(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	order, err := a.parseOrder([]byte(`{"clientOrderId":"x","symbol":"ETHBTC","status":"new","quantity":"1"}`), nil)
	require.NoError(t, err)
	assert.False(t, order.Price.Valid)
	assert.False(t, order.Filled.Valid)
	assert.False(t, order.Remaining.Valid)
	assert.False(t, order.Cost.Valid)
	assert.Nil(t, order.Timestamp)
}

func TestParseOrder_PriceBackfilledFromCache(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())
	a.orders.Put(&domain.Order{ID: "x", Price: decimal.NewNullDecimal(decimal.RequireFromString("0.05"))})

	order, err := a.parseOrder([]byte(`{"clientOrderId":"x","symbol":"ETHBTC","status":"filled","type":"market","quantity":"2","cumQuantity":"2"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "0.05", order.Price.Decimal.String())
	assert.Equal(t, "0.1", order.Cost.Decimal.String())
	assert.Equal(t, "0", order.Remaining.Decimal.String())
}

func TestParseOrder_UnknownMarket(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())
	_, err := a.parseOrder([]byte(`{"clientOrderId":"x","symbol":"XRPUSD","status":"new"}`), nil)
	assert.ErrorIs(t, err, domain.ErrBadSymbol)
}

func TestParseTicker(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	raw := `{"ask":"0.050043","bid":"0.050042","last":"0.050042","open":"0.047800","close":"0.050041","low":"0.047052",
		"high":"0.051679","volume":"36456.720","volumeQuote":"1782.625000","timestamp":"2017-05-12T14:57:19.999Z",
		"symbol":"ETHBTC"}`
	ticker, err := a.parseTicker([]byte(raw), nil)
	require.NoError(t, err)

	assert.Equal(t, "ETH/BTC", ticker.Symbol)
	assert.Equal(t, "0.050041", ticker.Close.Decimal.String())
	assert.Equal(t, "0.050042", ticker.Last.Decimal.String())
	assert.Equal(t, "36456.72", ticker.BaseVolume.Decimal.String())
	assert.Equal(t, "1782.625", ticker.QuoteVolume.Decimal.String())
	require.NotNil(t, ticker.Timestamp)
	assert.Equal(t, "ETHBTC", ticker.Info["symbol"])
}

func TestParseTicker_NullsAndMalformed(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())

	ticker, err := a.parseTicker([]byte(`{"symbol":"ETHBTC","ask":null,"bid":"n/a","timestamp":"yesterday"}`), nil)
	require.NoError(t, err)
	assert.False(t, ticker.Ask.Valid)
	assert.False(t, ticker.Bid.Valid)
	assert.False(t, ticker.Last.Valid)
	assert.Nil(t, ticker.Timestamp)
}

func TestParseOHLCV_VolumeIsQuote(t *testing.T) {
	a := newTestAdapter(t, newFakeTransport())

	c, err := a.parseOHLCV([]byte(`{"timestamp":"2017-10-20T20:00:00.000Z","open":"0.050459","close":"0.050087",
		"min":"0.050000","max":"0.050511","volume":"1326.628","volumeQuote":"66.555987736"}`))
	require.NoError(t, err)

	assert.Equal(t, "0.050459", c.Open.String())
	assert.Equal(t, "0.050511", c.High.String())
	assert.Equal(t, "0.05", c.Low.String())
	assert.Equal(t, "0.050087", c.Close.String())
	assert.Equal(t, "66.555987736", c.Volume.String())
	assert.Equal(t, domain.VolumeQuote, a.OHLCVVolume())

	_, err = a.parseOHLCV([]byte(`{"open":"1","close":"1","min":"1","max":"1","volumeQuote":"1"}`))
	assert.ErrorIs(t, err, domain.ErrExchange)
}

func TestParseBalances(t *testing.T) {
	a := newTestAdapter(t, newFakeTransport())

	balances, err := a.parseBalances([]byte(`[
		{"currency":"ETH","available":"10.5","reserved":"0.5","total":"999"},
		{"currency":"CAT","available":"0","reserved":"2"}
	]`))
	require.NoError(t, err)

	eth := balances.Currencies["ETH"]
	assert.Equal(t, "11", eth.Total.String())
	assert.Equal(t, "2", balances.Total()["BitClave"].String())
	assert.Equal(t, "10.5", balances.Free()["ETH"].String())
	assert.Len(t, balances.Info, 2)

	for code, b := range balances.Currencies {
		assert.True(t, b.Free.Add(b.Used).Equal(b.Total), code)
	}
}

func TestParseOrderBook_KeepsOrder(t *testing.T) {
	a := loadedAdapter(t, newFakeTransport())
	m, _ := a.catalog.Resolve("ETH/BTC")

	book, err := a.parseOrderBook([]byte(`{"ask":[{"price":"0.046002","size":"0.088"},{"price":"0.046001","size":"0.2"}],
		"bid":[{"price":"0.046001","size":"0.005"}],"timestamp":"2018-11-19T05:00:28.193Z"}`), m)
	require.NoError(t, err)

	require.Len(t, book.Asks, 2)
	assert.Equal(t, "0.046002", book.Asks[0].Price.String())
	assert.Equal(t, "0.046001", book.Asks[1].Price.String())
	require.Len(t, book.Bids, 1)
	assert.Equal(t, "ETH/BTC", book.Symbol)
	assert.NotNil(t, book.Timestamp)
}

func TestFilterBySinceLimit(t *testing.T) {
	at := func(sec int) *time.Time {
		ts := time.Unix(int64(sec), 0).UTC()
		return &ts
	}
	trades := []*domain.Trade{
		{ID: "c", Timestamp: at(30)},
		{ID: "nil"},
		{ID: "a", Timestamp: at(10)},
		{ID: "b", Timestamp: at(20)},
	}
	ts := func(t *domain.Trade) *time.Time { return t.Timestamp }
	ids := func(list []*domain.Trade) []string {
		out := make([]string, 0, len(list))
		for _, t := range list {
			out = append(out, t.ID)
		}
		return out
	}

	all := filterBySinceLimit(append([]*domain.Trade(nil), trades...), ts, domain.Query{})
	assert.Equal(t, []string{"nil", "a", "b", "c"}, ids(all))

	since := filterBySinceLimit(append([]*domain.Trade(nil), trades...), ts, domain.Query{Since: at(20)})
	assert.Equal(t, []string{"b", "c"}, ids(since))

	limited := filterBySinceLimit(append([]*domain.Trade(nil), trades...), ts, domain.Query{Since: at(10), Limit: 2})
	assert.Equal(t, []string{"a", "b"}, ids(limited))
}
