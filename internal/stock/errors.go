package stock

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup failed.
type Kind int

const (
	KindInvalidSymbol Kind = iota + 1
	KindInvalidURL
	KindNoData
	KindTransport
	KindDecodeFailure
	KindAggregation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSymbol:
		return "invalid_symbol"
	case KindInvalidURL:
		return "invalid_url"
	case KindNoData:
		return "no_data"
	case KindTransport:
		return "transport"
	case KindDecodeFailure:
		return "decode_failure"
	case KindAggregation:
		return "aggregation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a FetchError's kind.
var (
	ErrInvalidSymbol = &FetchError{Kind: KindInvalidSymbol}
	ErrInvalidURL    = &FetchError{Kind: KindInvalidURL}
	ErrNoData        = &FetchError{Kind: KindNoData}
	ErrTransport     = &FetchError{Kind: KindTransport}
	ErrDecodeFailure = &FetchError{Kind: KindDecodeFailure}
	ErrAggregation   = &FetchError{Kind: KindAggregation}
)

// FetchError is the terminal error of a single lookup attempt.
// Err holds the underlying cause and may be nil.
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	var msg string
	switch e.Kind {
	case KindInvalidSymbol:
		msg = "invalid symbol"
	case KindInvalidURL:
		msg = "invalid URL"
	case KindNoData:
		msg = "no data received"
	case KindTransport:
		msg = "transport error"
	case KindDecodeFailure:
		msg = "failed to decode response"
	case KindAggregation:
		msg = "aggregation failed"
	default:
		msg = "fetch failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is a FetchError of the same kind.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}

// InvalidSymbol wraps err as a KindInvalidSymbol failure.
func InvalidSymbol(err error) error { return newError(KindInvalidSymbol, err) }

// InvalidURL wraps err as a KindInvalidURL failure.
func InvalidURL(err error) error { return newError(KindInvalidURL, err) }

// NoData wraps err as a KindNoData failure.
func NoData(err error) error { return newError(KindNoData, err) }

// Transport wraps err as a KindTransport failure.
func Transport(err error) error { return newError(KindTransport, err) }

// DecodeFailure wraps err as a KindDecodeFailure failure.
func DecodeFailure(err error) error { return newError(KindDecodeFailure, err) }

// Aggregation wraps err as a KindAggregation failure.
func Aggregation(err error) error { return newError(KindAggregation, err) }

// AsFetchError returns err unchanged when it already is a FetchError and
// wraps anything else as a transport failure.
func AsFetchError(err error) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return Transport(err)
}

// KindOf returns the kind of err, or zero when err is not a FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
