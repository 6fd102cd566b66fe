package aggregate

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"stocklookup/internal/stock"
)

// DefaultBranchTimeout bounds each of the two fetches independently.
const DefaultBranchTimeout = 10 * time.Second

// Aggregator looks up a symbol by fetching its quote and company profile
// concurrently and joining them into a stock.Snapshot.
type Aggregator struct {
	quotes   QuoteSource
	profiles ProfileSource
	timeout  time.Duration
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithBranchTimeout sets the per-branch timeout. Non-positive disables it.
func WithBranchTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.timeout = d
	}
}

// New returns an Aggregator reading quotes and profiles from the given sources.
func New(quotes QuoteSource, profiles ProfileSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		quotes:   quotes,
		profiles: profiles,
		timeout:  DefaultBranchTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the terminal outcome of an asynchronous lookup.
type Result struct {
	Snapshot stock.Snapshot
	Err      error
}

// Lookup normalizes input, fetches both branches and composes a snapshot.
//
// Both branches always run to completion before Lookup returns; a failing
// branch does not cancel its sibling. When both fail, whichever error was
// recorded first is returned.
func (a *Aggregator) Lookup(ctx context.Context, input string) (stock.Snapshot, error) {
	symbol, err := stock.NormalizeSymbol(input)
	if err != nil {
		return stock.Snapshot{}, err
	}

	var (
		quote   stock.Quote
		profile stock.CompanyProfile
		g       errgroup.Group
	)
	g.Go(func() error {
		bctx, cancel := a.branchContext(ctx)
		defer cancel()
		q, err := a.quotes.GetQuote(bctx, symbol)
		if err != nil {
			return stock.AsFetchError(err)
		}
		quote = q
		return nil
	})
	g.Go(func() error {
		bctx, cancel := a.branchContext(ctx)
		defer cancel()
		p, err := a.profiles.GetCompanyProfile(bctx, symbol)
		if err != nil {
			return stock.AsFetchError(err)
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return stock.Snapshot{}, err
	}
	return stock.Compose(symbol, quote, profile)
}

// Go runs Lookup in its own goroutine. The returned channel yields exactly
// one Result and is then closed.
func (a *Aggregator) Go(ctx context.Context, input string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		snap, err := a.Lookup(ctx, input)
		ch <- Result{Snapshot: snap, Err: err}
	}()
	return ch
}

func (a *Aggregator) branchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
