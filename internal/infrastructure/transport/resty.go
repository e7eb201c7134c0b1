package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 1500 * time.Millisecond
	userAgent        = "crypto-exchange-adapter/1.0"
)

type Config struct {
	Timeout    time.Duration
	RetryCount int
	// RateLimit is the minimum spacing between requests; zero disables it.
	RateLimit time.Duration
}

// RestyTransport executes exchange requests over HTTP. It spaces requests
// out with a token bucket and retries idempotent calls that fail with a
// network error or a 5xx status.
type RestyTransport struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ domain.Transport = (*RestyTransport)(nil)

func NewRestyTransport(cfg Config, logger *zap.Logger) *RestyTransport {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Every(cfg.RateLimit)
	}

	t := &RestyTransport{
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
	t.client = resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryable).
		AddRetryHook(func(resp *resty.Response, err error) {
			fields := []zap.Field{zap.Error(err)}
			if resp != nil && resp.Request != nil {
				fields = append(fields,
					zap.String("url", resp.Request.URL),
					zap.Int("status", resp.StatusCode()),
					zap.Int("attempt", resp.Request.Attempt))
			}
			t.logger.Warn("Retrying request", fields...)
		})
	return t
}

// retryable only allows GET retries so an order or withdrawal is never
// submitted twice.
func retryable(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

func (t *RestyTransport) Execute(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	r := t.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	return &domain.Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
