package stock

import (
	"errors"
	"strings"
)

// Quote is the price payload for a symbol.
// Nil prices mean the upstream sent null or omitted the field.
type Quote struct {
	CurrentPrice  *float64 `json:"c"`
	PreviousClose *float64 `json:"pc"`
	Open          *float64 `json:"o,omitempty"`
	High          *float64 `json:"h,omitempty"`
	Low           *float64 `json:"l,omitempty"`
	Timestamp     int64    `json:"t,omitempty"`
}

// Current returns the current price, 0 when absent.
func (q Quote) Current() float64 { return valueOr(q.CurrentPrice) }

// Previous returns the previous close, 0 when absent.
func (q Quote) Previous() float64 { return valueOr(q.PreviousClose) }

// CompanyProfile is the subset of the company profile we display.
type CompanyProfile struct {
	Name     *string `json:"name"`
	Ticker   string  `json:"ticker,omitempty"`
	Exchange string  `json:"exchange,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// DisplayName returns the profile name, or fallback when the name is absent or blank.
func (p CompanyProfile) DisplayName(fallback string) string {
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return fallback
	}
	return *p.Name
}

// Polarity is the display direction of a price change.
type Polarity int

const (
	// Up marks a zero or positive change.
	Up Polarity = iota
	// Down marks a negative change.
	Down
)

func (p Polarity) String() string {
	if p == Down {
		return "down"
	}
	return "up"
}

// Snapshot is the aggregated, display-ready result of one lookup.
type Snapshot struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	PriceChange   float64 `json:"price_change"`
	PercentChange float64 `json:"percent_change"`
	Exchange      string  `json:"exchange,omitempty"`
	Currency      string  `json:"currency,omitempty"`
}

// Polarity is Up for a non-negative change.
func (s Snapshot) Polarity() Polarity {
	if s.PriceChange < 0 {
		return Down
	}
	return Up
}

// NormalizeSymbol trims and upper-cases input.
func NormalizeSymbol(input string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return "", InvalidSymbol(errors.New("symbol is empty"))
	}
	return s, nil
}

// Compose joins a quote and a profile into a Snapshot for symbol.
func Compose(symbol string, q Quote, p CompanyProfile) (Snapshot, error) {
	if symbol == "" {
		return Snapshot{}, Aggregation(errors.New("missing symbol"))
	}
	current := q.Current()
	previous := q.Previous()
	change := current - previous
	percent := 0.0
	if previous != 0 {
		percent = change / previous * 100
	}
	return Snapshot{
		Symbol:        symbol,
		CompanyName:   p.DisplayName(symbol),
		CurrentPrice:  current,
		PreviousClose: previous,
		PriceChange:   change,
		PercentChange: percent,
		Exchange:      p.Exchange,
		Currency:      p.Currency,
	}, nil
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
