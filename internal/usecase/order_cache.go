package usecase

import (
	"sync"

	"github.com/vitos/crypto_exchange_adapter/internal/domain"
)

const DefaultOrderCacheSize = 1000

// OrderCache remembers orders by correlation id so later responses that omit
// the price can be backfilled. It is bounded: once full, the oldest id is
// evicted. Overwriting an id keeps its position.
type OrderCache struct {
	capacity int

	mu     sync.RWMutex
	orders map[string]*domain.Order
	keys   []string
}

func NewOrderCache(capacity int) *OrderCache {
	if capacity <= 0 {
		capacity = DefaultOrderCacheSize
	}
	return &OrderCache{
		capacity: capacity,
		orders:   make(map[string]*domain.Order),
	}
}

func (c *OrderCache) Put(order *domain.Order) {
	if order == nil || order.ID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.orders[order.ID]; !ok {
		c.keys = append(c.keys, order.ID)
	}
	c.orders[order.ID] = order

	for len(c.keys) > c.capacity {
		oldest := c.keys[0]
		c.keys = c.keys[1:]
		delete(c.orders, oldest)
	}
}

func (c *OrderCache) Get(id string) (*domain.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.orders[id]
	return o, ok
}

func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}
