package hitbtc

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
)

const (
	symbolsFixture = `[
		{"id":"ETHBTC","baseCurrency":"ETH","quoteCurrency":"BTC","quantityIncrement":"0.0001","tickSize":"0.000001","takeLiquidityRate":"0.001","provideLiquidityRate":"-0.0001","feeCurrency":"BTC"},
		{"id":"CATBTC","baseCurrency":"CAT","quoteCurrency":"BTC","quantityIncrement":"1","tickSize":"0.0000001","feeCurrency":"BTC"}
	]`
	currenciesFixture = `[
		{"id":"BTC","fullName":"Bitcoin","crypto":true,"payinEnabled":true,"payoutEnabled":true,"transferEnabled":true},
		{"id":"ETH","fullName":"Ethereum","crypto":true,"payinEnabled":true,"payoutEnabled":false,"transferEnabled":true},
		{"id":"CAT","fullName":"BitClave","crypto":true,"payinEnabled":true,"payoutEnabled":true,"transferEnabled":true}
	]`
)

type fakeRoute struct {
	status int
	body   string
}

// fakeTransport answers requests by method and URL path.
type fakeTransport struct {
	mu       sync.Mutex
	routes   map[string]fakeRoute
	requests []*domain.Request
	err      error
}

func newFakeTransport() *fakeTransport {
	f := &fakeTransport{routes: make(map[string]fakeRoute)}
	f.on("GET", "/api/2/public/symbol", 200, symbolsFixture)
	f.on("GET", "/api/2/public/currency", 200, currenciesFixture)
	return f
}

func (f *fakeTransport) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fakeRoute{status: status, body: body}
}

func (f *fakeTransport) Execute(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	route, ok := f.routes[req.Method+" "+u.Path]
	if !ok {
		return &domain.Response{StatusCode: 404, Body: []byte(`{"error":{"code":404,"message":"Not found"}}`)}, nil
	}
	return &domain.Response{StatusCode: route.status, Body: []byte(route.body)}, nil
}

func (f *fakeTransport) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		u, _ := url.Parse(r.URL)
		if r.Method == method && u.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeTransport) last(method, path string) *domain.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		r := f.requests[i]
		u, _ := url.Parse(r.URL)
		if r.Method == method && u.Path == path {
			return r
		}
	}
	return nil
}

func newTestAdapter(t *testing.T, transport *fakeTransport) *Adapter {
	t.Helper()
	return NewAdapter(transport, Options{
		APIKey:           "key",
		APISecret:        "secret",
		NewClientOrderID: func() string { return "cid-1" },
	})
}

func loadedAdapter(t *testing.T, transport *fakeTransport) *Adapter {
	t.Helper()
	a := newTestAdapter(t, transport)
	_, err := a.LoadMarkets(context.Background(), false)
	require.NoError(t, err)
	return a
}
