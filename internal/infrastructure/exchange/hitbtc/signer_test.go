package hitbtc

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
)

func TestSigner_PublicRequestHasNoAuth(t *testing.T) {
	s := NewSigner(ExchangeID, BaseURL, APIVersion, "key", "secret")

	req, err := s.Sign(publicOrderBook, Params{"symbol": "ETHBTC", "limit": "10"})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "https://api.hitbtc.com/api/2/public/orderbook/ETHBTC?limit=10", req.URL)
	assert.Empty(t, req.Headers)
	assert.Nil(t, req.Body)
}

func TestSigner_PublicRequestWorksWithoutCredentials(t *testing.T) {
	s := NewSigner(ExchangeID, BaseURL, APIVersion, "", "")

	req, err := s.Sign(publicSymbols, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.hitbtc.com/api/2/public/symbol", req.URL)
}

func TestSigner_PrivateGetUsesQueryAndBasicAuth(t *testing.T) {
	s := NewSigner(ExchangeID, BaseURL+"/", APIVersion, "key", "secret")

	req, err := s.Sign(privateHistoryOrders, Params{"clientOrderId": "abc"})
	require.NoError(t, err)

	u, err := url.Parse(req.URL)
	require.NoError(t, err)
	assert.Equal(t, "/api/2/history/order", u.Path)
	assert.Equal(t, "abc", u.Query().Get("clientOrderId"))
	assert.Nil(t, req.Body)

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
	assert.Equal(t, want, req.Headers["Authorization"])
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
}

func TestSigner_PrivateWriteUsesJSONBody(t *testing.T) {
	s := NewSigner(ExchangeID, BaseURL, APIVersion, "key", "secret")

	req, err := s.Sign(privateCreateOrder, Params{"symbol": "ETHBTC", "quantity": "1.5", "side": "buy"})
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://api.hitbtc.com/api/2/order", req.URL)

	var body map[string]string
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, map[string]string{"symbol": "ETHBTC", "quantity": "1.5", "side": "buy"}, body)
}

func TestSigner_PathParamsAreNotRepeated(t *testing.T) {
	s := NewSigner(ExchangeID, BaseURL, APIVersion, "key", "secret")

	req, err := s.Sign(privateCancelOrder, Params{"clientOrderId": "a/b"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.hitbtc.com/api/2/order/a%2Fb", req.URL)
	assert.Nil(t, req.Body)
}

func TestSigner_PrivateWithoutCredentials(t *testing.T) {
	for _, creds := range [][2]string{{"", ""}, {"key", ""}, {"", "secret"}} {
		s := NewSigner(ExchangeID, BaseURL, APIVersion, creds[0], creds[1])
		_, err := s.Sign(privateTradingBalance, nil)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	}
}
