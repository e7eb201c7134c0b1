package hitbtc

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"go.uber.org/zap"
)

type wsRequest struct {
	Method string `json:"method"`
	Params Params `json:"params"`
	ID     int    `json:"id"`
}

type wsMessage struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TickerStream pushes live tickers for subscribed markets over the HitBTC
// websocket. Subscriptions survive reconnects.
type TickerStream struct {
	adapter *Adapter
	wsURL   string
	logger  *zap.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	marketIDs []string
	callbacks []func(*domain.Ticker)
	nextID    int
}

func NewTickerStream(adapter *Adapter, wsURL string) *TickerStream {
	if wsURL == "" {
		wsURL = WSURL
	}
	return &TickerStream{
		adapter: adapter,
		wsURL:   wsURL,
		logger:  adapter.logger.With(zap.String("stream", "ticker")),
	}
}

func (s *TickerStream) OnTicker(callback func(*domain.Ticker)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, callback)
}

// Subscribe resolves symbols against the market catalog and subscribes on
// the live connection, if there is one.
func (s *TickerStream) Subscribe(ctx context.Context, symbols []string) error {
	if err := s.adapter.catalog.Load(ctx, false); err != nil {
		return err
	}
	ids := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		m, err := s.adapter.catalog.Resolve(symbol)
		if err != nil {
			return err
		}
		ids = append(ids, m.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.marketIDs = append(s.marketIDs, ids...)
	if s.conn == nil {
		// Run replays subscriptions once connected
		return nil
	}
	return s.subscribe(ids)
}

// subscribe must be called with mu held.
func (s *TickerStream) subscribe(ids []string) error {
	for _, id := range ids {
		s.nextID++
		payload, err := json.Marshal(wsRequest{
			Method: "subscribeTicker",
			Params: Params{"symbol": id},
			ID:     s.nextID,
		})
		if err != nil {
			return err
		}
		if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return domain.WrapError(domain.ErrNetwork, s.adapter.id, err)
		}
	}
	return nil
}

// Run keeps the stream connected until ctx is canceled, reconnecting with
// exponential backoff. It always returns ctx.Err().
func (s *TickerStream) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	for {
		err := s.session(ctx, b)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := b.NextBackOff()
		s.logger.Warn("Ticker stream disconnected", zap.Error(err), zap.Duration("retry_in", wait))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (s *TickerStream) session(ctx context.Context, b *backoff.ExponentialBackOff) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return err
	}
	b.Reset()

	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		conn.Close()
	}()

	s.mu.Lock()
	s.conn = conn
	err = s.subscribe(s.marketIDs)
	count := len(s.marketIDs)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.logger.Info("Ticker stream connected", zap.String("url", s.wsURL), zap.Int("markets", count))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	return s.readLoop(conn)
}

func (s *TickerStream) readLoop(conn *websocket.Conn) error {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			s.logger.Warn("Malformed stream message", zap.Error(err))
			continue
		}
		if msg.Error != nil {
			s.logger.Warn("Stream request rejected",
				zap.Int("code", msg.Error.Code),
				zap.String("message", msg.Error.Message))
			continue
		}
		if msg.Method != "ticker" || len(msg.Params) == 0 {
			continue
		}

		ticker, err := s.adapter.parseTicker(msg.Params, nil)
		if err != nil {
			s.logger.Warn("Malformed ticker update", zap.Error(err))
			continue
		}

		s.mu.Lock()
		callbacks := make([]func(*domain.Ticker), len(s.callbacks))
		copy(callbacks, s.callbacks)
		s.mu.Unlock()

		for _, cb := range callbacks {
			cb(ticker)
		}
	}
}
