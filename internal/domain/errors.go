package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork           = errors.New("NetworkError")
	ErrExchange          = errors.New("ExchangeError")
	ErrAuthentication    = errors.New("AuthenticationError")
	ErrInsufficientFunds = errors.New("InsufficientFunds")
	ErrOrderNotFound     = errors.New("OrderNotFound")
	ErrBadSymbol         = errors.New("BadSymbol")
	ErrInvalidOrder      = errors.New("InvalidOrder")
)

// Error is the typed failure returned by adapters. Kind is one of the
// sentinels above; every kind except ErrNetwork also matches ErrExchange.
type Error struct {
	Kind     error
	Exchange string
	Message  string
	Err      error
}

func NewError(kind error, exchange, format string, args ...any) *Error {
	return &Error{Kind: kind, Exchange: exchange, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a cause, keeping it reachable through errors.Is.
func WrapError(kind error, exchange string, err error) *Error {
	return &Error{Kind: kind, Exchange: exchange, Message: err.Error(), Err: err}
}

func (e *Error) Error() string {
	if e.Exchange == "" {
		return e.Message
	}
	return e.Exchange + " " + e.Message
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Kind != ErrNetwork && e.Kind != ErrExchange {
		errs = append(errs, ErrExchange)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the sentinel kind of err, or nil for untyped errors.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
