// Package viewmodel holds the presentation state of a symbol lookup.
//
// A Model is what a UI binds to: it owns the symbol being edited, starts
// lookups without blocking the caller and publishes every state transition.
// Overlapping lookups are not superseded, so when a second trigger starts
// before the first completes the last one to finish wins.
package viewmodel

import (
	"context"
	"sync"

	"stocklookup/internal/stock"
)

// Looker performs one lookup. *aggregate.Aggregator implements it.
type Looker interface {
	Lookup(ctx context.Context, input string) (stock.Snapshot, error)
}

// State is a copy of the presentation state at one point in time.
type State struct {
	Symbol       string          `json:"symbol"`
	Loading      bool            `json:"loading"`
	HasError     bool            `json:"has_error"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Snapshot     *stock.Snapshot `json:"snapshot,omitempty"`
}

// Model is the bindable lookup state. Its zero value is not usable; call New.
type Model struct {
	looker Looker

	// OnChange, when set, receives every state transition. It is called
	// from the goroutine that produced the transition.
	OnChange func(State)

	mu    sync.Mutex
	state State
}

// New returns a Model that runs lookups through looker.
func New(looker Looker) *Model {
	return &Model{looker: looker}
}

// SetSymbol records the raw symbol input.
func (m *Model) SetSymbol(symbol string) {
	m.mu.Lock()
	m.state.Symbol = symbol
	m.mu.Unlock()
}

// State returns the current state.
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fetch starts a lookup of the current symbol and returns immediately.
// The returned channel is closed once the terminal state is published.
func (m *Model) Fetch(ctx context.Context) <-chan struct{} {
	m.mu.Lock()
	symbol := m.state.Symbol
	m.state.Loading = true
	m.state.HasError = false
	m.state.ErrorMessage = ""
	m.state.Snapshot = nil
	loading := m.state
	m.mu.Unlock()
	m.publish(loading)

	done := make(chan struct{})
	go func() {
		defer close(done)
		snap, err := m.looker.Lookup(ctx, symbol)

		m.mu.Lock()
		m.state.Loading = false
		if err != nil {
			m.state.HasError = true
			m.state.ErrorMessage = err.Error()
			m.state.Snapshot = nil
		} else {
			m.state.HasError = false
			m.state.ErrorMessage = ""
			m.state.Snapshot = &snap
		}
		final := m.state
		m.mu.Unlock()
		m.publish(final)
	}()
	return done
}

func (m *Model) publish(s State) {
	if m.OnChange != nil {
		m.OnChange(s)
	}
}
