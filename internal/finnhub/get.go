package finnhub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"stocklookup/internal/stock"
)

const (
	quotePath   = "/quote"
	profilePath = "/stock/profile2"

	maxBodyBytes = 1 << 20
)

// StatusError is returned, wrapped as a transport failure, when the API
// answers with a non-2xx status.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Msg, e.Code)
}

// GetQuote retrieves the latest quote for symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (stock.Quote, error) {
	b, err := c.get(ctx, quotePath, symbol)
	if err != nil {
		return stock.Quote{}, err
	}
	return stock.DecodeQuote(b)
}

// GetCompanyProfile retrieves the company profile for symbol.
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) (stock.CompanyProfile, error) {
	b, err := c.get(ctx, profilePath, symbol)
	if err != nil {
		return stock.CompanyProfile{}, err
	}
	return stock.DecodeCompanyProfile(b)
}

// get performs a GET on path and returns the raw, non-empty body.
func (c *Client) get(ctx context.Context, path, symbol string) ([]byte, error) {
	u, err := url.Parse(strings.TrimRight(c.baseURL, "/") + path)
	if err != nil {
		return nil, stock.InvalidURL(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, stock.InvalidURL(fmt.Errorf("base URL %q has no scheme or host", c.baseURL))
	}

	query := maps.Clone(c.query)
	query.Set("symbol", symbol)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, stock.InvalidURL(fmt.Errorf("creating request: %w", err))
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, stock.Transport(fmt.Errorf("performing request: %w", err))
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
		return nil, stock.Transport(&StatusError{Code: res.StatusCode, Msg: "unauthorized"})
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, stock.Transport(&StatusError{Code: res.StatusCode, Msg: "rate limited"})
	default:
		return nil, stock.Transport(&StatusError{Code: res.StatusCode, Msg: "unexpected status code"})
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, stock.Transport(fmt.Errorf("reading body: %w", err))
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, stock.NoData(errors.New(path + " returned an empty body"))
	}
	return b, nil
}
