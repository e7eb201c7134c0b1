package hitbtc

import (
	"github.com/goccy/go-json"
)

// rawString holds a JSON string or number verbatim. HitBTC sends decimals
// as strings but ids as numbers; both decode here.
type rawString string

func (r *rawString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = rawString(s)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	*r = rawString(b)
	return nil
}

func (r *rawString) ptr() *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}

type rawSymbol struct {
	ID                   string     `json:"id"`
	BaseCurrency         string     `json:"baseCurrency"`
	QuoteCurrency        string     `json:"quoteCurrency"`
	QuantityIncrement    *rawString `json:"quantityIncrement"`
	TickSize             *rawString `json:"tickSize"`
	TakeLiquidityRate    *rawString `json:"takeLiquidityRate"`
	ProvideLiquidityRate *rawString `json:"provideLiquidityRate"`
	FeeCurrency          string     `json:"feeCurrency"`
}

type rawCurrency struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Crypto          bool   `json:"crypto"`
	PayinEnabled    bool   `json:"payinEnabled"`
	PayoutEnabled   bool   `json:"payoutEnabled"`
	TransferEnabled bool   `json:"transferEnabled"`
	Disabled        *bool  `json:"disabled"`
}

type rawTicker struct {
	Symbol      string     `json:"symbol"`
	Timestamp   *string    `json:"timestamp"`
	Ask         *rawString `json:"ask"`
	Bid         *rawString `json:"bid"`
	Last        *rawString `json:"last"`
	Open        *rawString `json:"open"`
	Close       *rawString `json:"close"`
	Low         *rawString `json:"low"`
	High        *rawString `json:"high"`
	Volume      *rawString `json:"volume"`
	VolumeQuote *rawString `json:"volumeQuote"`
	Message     *string    `json:"message"`
}

type rawTrade struct {
	ID            rawString  `json:"id"`
	ClientOrderID *string    `json:"clientOrderId"`
	OrderID       *rawString `json:"orderId"`
	Symbol        string     `json:"symbol"`
	Side          string     `json:"side"`
	Quantity      *rawString `json:"quantity"`
	Price         *rawString `json:"price"`
	Fee           *rawString `json:"fee"`
	Timestamp     *string    `json:"timestamp"`
}

type rawOrder struct {
	ID            *rawString `json:"id"`
	ClientOrderID rawString  `json:"clientOrderId"`
	Symbol        string     `json:"symbol"`
	Side          string     `json:"side"`
	Status        string     `json:"status"`
	Type          string     `json:"type"`
	TimeInForce   string     `json:"timeInForce"`
	Quantity      *rawString `json:"quantity"`
	Price         *rawString `json:"price"`
	CumQuantity   *rawString `json:"cumQuantity"`
	CreatedAt     *string    `json:"createdAt"`
	UpdatedAt     *string    `json:"updatedAt"`
}

type rawCandle struct {
	Timestamp   *string    `json:"timestamp"`
	Open        *rawString `json:"open"`
	Close       *rawString `json:"close"`
	Min         *rawString `json:"min"`
	Max         *rawString `json:"max"`
	Volume      *rawString `json:"volume"`
	VolumeQuote *rawString `json:"volumeQuote"`
}

type rawBalance struct {
	Currency  string     `json:"currency"`
	Available *rawString `json:"available"`
	Reserved  *rawString `json:"reserved"`
}

type rawBookLevel struct {
	Price *rawString `json:"price"`
	Size  *rawString `json:"size"`
}

type rawOrderBook struct {
	Ask       []rawBookLevel `json:"ask"`
	Bid       []rawBookLevel `json:"bid"`
	Timestamp *string        `json:"timestamp"`
}

type rawTransaction struct {
	ID        rawString  `json:"id"`
	Currency  string     `json:"currency"`
	Amount    *rawString `json:"amount"`
	Fee       *rawString `json:"fee"`
	Address   *string    `json:"address"`
	PaymentID *string    `json:"paymentId"`
	Hash      *string    `json:"hash"`
	Status    string     `json:"status"`
	Type      string     `json:"type"`
	CreatedAt *string    `json:"createdAt"`
	UpdatedAt *string    `json:"updatedAt"`
}

type rawTradingFee struct {
	TakeLiquidityRate    *rawString `json:"takeLiquidityRate"`
	ProvideLiquidityRate *rawString `json:"provideLiquidityRate"`
}

type rawAddress struct {
	Address   string  `json:"address"`
	PaymentID *string `json:"paymentId"`
}

type rawID struct {
	ID rawString `json:"id"`
}

type rawResult struct {
	Result bool `json:"result"`
}

// decodeRecord fills v and also returns the record as a generic map for
// the canonical Info passthrough.
func decodeRecord(raw []byte, v any) (map[string]any, error) {
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	var info map[string]any
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, err
	}
	return info, nil
}
