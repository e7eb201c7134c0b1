package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches the full market and currency lists from an exchange.
type CatalogLoader func(ctx context.Context) ([]*domain.Market, []*domain.Currency, error)

// MarketCatalog owns the id<->symbol maps of one exchange. It is loaded
// once; concurrent loads collapse into a single fetch.
type MarketCatalog struct {
	exchange string
	loader   CatalogLoader
	logger   *zap.Logger

	group singleflight.Group

	mu         sync.RWMutex
	loaded     bool
	bySymbol   map[string]*domain.Market
	byID       map[string]*domain.Market
	currencies map[string]*domain.Currency
}

func NewMarketCatalog(exchange string, loader CatalogLoader, logger *zap.Logger) *MarketCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketCatalog{
		exchange:   exchange,
		loader:     loader,
		logger:     logger,
		bySymbol:   make(map[string]*domain.Market),
		byID:       make(map[string]*domain.Market),
		currencies: make(map[string]*domain.Currency),
	}
}

// LoadTimeout bounds a shared catalog fetch.
const LoadTimeout = time.Minute

// Load fetches the catalog unless it is already loaded and force is false.
// On failure the previous contents are left untouched. Concurrent callers
// share one fetch; it is detached from any single caller's cancellation,
// and each caller stops waiting when its own ctx ends.
func (c *MarketCatalog) Load(ctx context.Context, force bool) error {
	if !force && c.Loaded() {
		return nil
	}

	ch := c.group.DoChan("load", func() (any, error) {
		if !force && c.Loaded() {
			return nil, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		return nil, c.fetch(fetchCtx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return domain.WrapError(domain.ErrNetwork, c.exchange, ctx.Err())
	}
}

func (c *MarketCatalog) fetch(ctx context.Context) error {
	markets, currencies, err := c.loader(ctx)
	if err != nil {
		return err
	}

	bySymbol := make(map[string]*domain.Market, len(markets))
	byID := make(map[string]*domain.Market, len(markets))
	for _, m := range markets {
		if _, dup := bySymbol[m.Symbol]; dup {
			return domain.NewError(domain.ErrExchange, c.exchange, "duplicate market symbol %s", m.Symbol)
		}
		if _, dup := byID[m.ID]; dup {
			return domain.NewError(domain.ErrExchange, c.exchange, "duplicate market id %s", m.ID)
		}
		bySymbol[m.Symbol] = m
		byID[m.ID] = m
	}

	byCode := make(map[string]*domain.Currency, len(currencies))
	for _, cur := range currencies {
		byCode[cur.Code] = cur
	}

	c.mu.Lock()
	c.bySymbol = bySymbol
	c.byID = byID
	c.currencies = byCode
	c.loaded = true
	c.mu.Unlock()

	c.logger.Info("Market catalog loaded",
		zap.String("exchange", c.exchange),
		zap.Int("markets", len(bySymbol)),
		zap.Int("currencies", len(byCode)))
	return nil
}

func (c *MarketCatalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Resolve looks a market up by canonical symbol.
func (c *MarketCatalog) Resolve(symbol string) (*domain.Market, error) {
	c.mu.RLock()
	m, ok := c.bySymbol[symbol]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrBadSymbol, c.exchange, "does not have market symbol %s", symbol)
	}
	return m, nil
}

// ResolveByID looks a market up by exchange-native id.
func (c *MarketCatalog) ResolveByID(id string) (*domain.Market, error) {
	c.mu.RLock()
	m, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrBadSymbol, c.exchange, "does not have market id %s", id)
	}
	return m, nil
}

func (c *MarketCatalog) Currency(code string) (*domain.Currency, error) {
	c.mu.RLock()
	cur, ok := c.currencies[code]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.NewError(domain.ErrBadSymbol, c.exchange, "does not have currency code %s", code)
	}
	return cur, nil
}

// Markets returns the catalog keyed by symbol. The map is a copy; the
// markets are shared and must not be modified.
func (c *MarketCatalog) Markets() map[string]*domain.Market {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]*domain.Market, len(c.bySymbol))
	for s, m := range c.bySymbol {
		out[s] = m
	}
	return out
}

func (c *MarketCatalog) Currencies() map[string]*domain.Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]*domain.Currency, len(c.currencies))
	for code, cur := range c.currencies {
		out[code] = cur
	}
	return out
}

// Symbols returns all canonical symbols, sorted.
func (c *MarketCatalog) Symbols() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.bySymbol))
	for s := range c.bySymbol {
		out = append(out, s)
	}
	c.mu.RUnlock()
	sort.Strings(out)
	return out
}
