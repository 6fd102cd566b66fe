package viewmodel

import (
	"math"

	"github.com/shopspring/decimal"

	"stocklookup/internal/stock"
)

// Display is a snapshot rendered for humans: two decimal places and a
// polarity flag for colouring the change.
type Display struct {
	Symbol        string `json:"symbol"`
	CompanyName   string `json:"company_name"`
	CurrentPrice  string `json:"current_price"`
	PriceChange   string `json:"price_change"`
	PercentChange string `json:"percent_change"`
	Positive      bool   `json:"positive"`
}

// Format renders s with two decimal places.
func Format(s stock.Snapshot) Display {
	return Display{
		Symbol:        s.Symbol,
		CompanyName:   s.CompanyName,
		CurrentPrice:  fixed2(s.CurrentPrice),
		PriceChange:   fixed2(s.PriceChange),
		PercentChange: fixed2(s.PercentChange),
		Positive:      s.Polarity() == stock.Up,
	}
}

// fixed2 renders non-finite values as "n/a".
func fixed2(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
