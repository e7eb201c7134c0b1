package domain

import "github.com/shopspring/decimal"

// Balance holds one currency's funds. Total is always Free+Used.
type Balance struct {
	Free  decimal.Decimal `json:"free"`
	Used  decimal.Decimal `json:"used"`
	Total decimal.Decimal `json:"total"`
}

func NewBalance(free, used decimal.Decimal) Balance {
	return Balance{Free: free, Used: used, Total: free.Add(used)}
}

// Balances is keyed by canonical currency code.
type Balances struct {
	Currencies map[string]Balance `json:"currencies"`
	Info       []map[string]any   `json:"info,omitempty"`
}

func (b *Balances) Free() map[string]decimal.Decimal {
	return b.project(func(x Balance) decimal.Decimal { return x.Free })
}

func (b *Balances) Used() map[string]decimal.Decimal {
	return b.project(func(x Balance) decimal.Decimal { return x.Used })
}

func (b *Balances) Total() map[string]decimal.Decimal {
	return b.project(func(x Balance) decimal.Decimal { return x.Total })
}

func (b *Balances) project(f func(Balance) decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(b.Currencies))
	for code, bal := range b.Currencies {
		out[code] = f(bal)
	}
	return out
}
