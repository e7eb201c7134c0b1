package usecase

// CurrencyCodes translates between exchange-native currency ids and
// canonical codes. Ids without an alias map to themselves.
type CurrencyCodes struct {
	toCommon map[string]string
	toID     map[string]string
}

// NewCurrencyCodes takes aliases as raw id -> canonical code.
func NewCurrencyCodes(aliases map[string]string) *CurrencyCodes {
	c := &CurrencyCodes{
		toCommon: make(map[string]string, len(aliases)),
		toID:     make(map[string]string, len(aliases)),
	}
	for id, code := range aliases {
		c.toCommon[id] = code
		c.toID[code] = id
	}
	return c
}

func (c *CurrencyCodes) Common(id string) string {
	if code, ok := c.toCommon[id]; ok {
		return code
	}
	return id
}

func (c *CurrencyCodes) ID(code string) string {
	if id, ok := c.toID[code]; ok {
		return id
	}
	return code
}

// Symbol builds the canonical "BASE/QUOTE" symbol from raw ids.
func (c *CurrencyCodes) Symbol(baseID, quoteID string) string {
	return c.Common(baseID) + "/" + c.Common(quoteID)
}
