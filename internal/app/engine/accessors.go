package engine

import (
	"fmt"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
	"github.com/lumenmarkets/matching-core/internal/domain/orderbook"
	"github.com/lumenmarkets/matching-core/internal/domain/stats"
)

// Running reports whether the engine is currently RUNNING.
func (e *Engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// Status is a human-oriented summary of the engine's current state.
type Status struct {
	Running  bool
	Snapshot orderbook.Snapshot
	Stats    stats.Snapshot
}

// Status returns a read-only summary combining engine state, book
// depth/orders, and the current statistics.
func (e *Engine) Status() Status {
	return Status{
		Running:  e.Running(),
		Snapshot: e.book.Snapshot(),
		Stats:    e.stats.Snapshot(),
	}
}

// DetailedStats returns the statistics accumulator's counters plus the
// derived success-rate figure.
func (e *Engine) DetailedStats() stats.DetailedSnapshot {
	return e.stats.Detailed()
}

// ListGTD returns every resting GTD order on either side of the book.
func (e *Engine) ListGTD() []*order.Order {
	return e.book.ListGTD()
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine{running=%t}", e.Running())
}
