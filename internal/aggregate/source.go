package aggregate

import (
	"context"

	"stocklookup/internal/stock"
)

// QuoteSource fetches the quote branch of a lookup.
//
//go:generate mockgen -package=aggregate_test -destination=mock_source_test.go -source=source.go
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (stock.Quote, error)
}

// ProfileSource fetches the company profile branch of a lookup.
type ProfileSource interface {
	GetCompanyProfile(ctx context.Context, symbol string) (stock.CompanyProfile, error)
}
