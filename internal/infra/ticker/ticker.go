// Package ticker adapts time.Ticker to domain.TickSource.
package ticker

import (
	"time"

	"github.com/runoshun/g2g/internal/domain"
)

// Source creates real tickers.
type Source struct{}

// Ensure Source implements domain.TickSource.
var _ domain.TickSource = Source{}

// NewTicker starts a ticker firing every d.
func (Source) NewTicker(d time.Duration) domain.Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }

// Stop stops the ticker. Since Go 1.23 no value is received from C after Stop returns.
func (r *realTicker) Stop() { r.t.Stop() }
