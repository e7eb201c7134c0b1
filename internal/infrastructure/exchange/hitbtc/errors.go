package hitbtc

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
)

type errorBody struct {
	Error *struct {
		Code        int    `json:"code"`
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"error"`
}

// classify maps a completed HTTP exchange onto the error taxonomy. It
// returns nil for 2xx responses.
func classify(exchange string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	if status == 400 {
		if msg, ok := errorMessage(body); ok {
			switch msg {
			case "Order not found":
				return domain.NewError(domain.ErrOrderNotFound, exchange, "order not found in active orders")
			case "Insufficient funds":
				return domain.NewError(domain.ErrInsufficientFunds, exchange, "%s", msg)
			}
		}
	}

	return domain.NewError(domain.ErrExchange, exchange, "%s", string(body))
}

// checkBody rejects a 2xx payload that still carries an error object.
func checkBody(exchange string, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil
	}
	if _, ok := probe["error"]; ok {
		return domain.NewError(domain.ErrExchange, exchange, "%s", string(trimmed))
	}
	return nil
}

func errorMessage(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var eb errorBody
	if err := json.Unmarshal(trimmed, &eb); err != nil || eb.Error == nil || eb.Error.Message == "" {
		return "", false
	}
	return eb.Error.Message, true
}
