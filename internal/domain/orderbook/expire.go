package orderbook

import (
	"time"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
)

// RemoveExpiredGTD removes every GTD order whose expiration has elapsed as
// of now, from both sides of the book. DAY orders are untouched.
func (b *Book) RemoveExpiredGTD(now time.Time) []*order.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeWhereLocked(func(o *order.Order) bool { return o.IsExpired(now) })
}

// ExpireDay removes every DAY order from both sides of the book. The engine
// calls this at the daily reset (spec mandates DAY orders expire there,
// diverging from the source, which never expires them).
func (b *Book) ExpireDay() []*order.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeWhereLocked(func(o *order.Order) bool { return o.TimeInForce == order.Day })
}

// ListGTD returns every resting GTD order on either side, independent of
// the expiry sweep.
func (b *Book) ListGTD() []*order.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []*order.Order
	collect := func(side map[string]*level) {
		for _, lvl := range side {
			for _, o := range lvl.orders {
				if o.TimeInForce == order.GTD {
					out = append(out, o)
				}
			}
		}
	}
	collect(b.bids)
	collect(b.asks)
	return out
}

// removeWhereLocked removes every order matching pred from both sides,
// dropping any price level left empty, and returns the removed orders. The
// caller must hold b.mu.
func (b *Book) removeWhereLocked(pred func(*order.Order) bool) []*order.Order {
	var removed []*order.Order

	removeSide := func(side map[string]*level) {
		for key, lvl := range side {
			kept := make([]*order.Order, 0, len(lvl.orders))
			for _, o := range lvl.orders {
				if pred(o) {
					removed = append(removed, o)
					continue
				}
				kept = append(kept, o)
			}

			if len(kept) == 0 {
				delete(side, key)
				continue
			}
			lvl.orders = kept
		}
	}

	removeSide(b.bids)
	removeSide(b.asks)
	return removed
}
