package orderbook

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
	"github.com/lumenmarkets/matching-core/internal/domain/trade"
)

// DepthLevel is one point of a depth curve: a price and the cumulative
// resting quantity at that price and every better price before it.
type DepthLevel struct {
	Price              decimal.Decimal
	CumulativeQuantity int64
}

// Snapshot is a read-only view of the book suitable for depth-chart and
// table rendering by an external collaborator.
type Snapshot struct {
	Bids   []DepthLevel
	Asks   []DepthLevel
	Orders []*order.Order
}

// LastTrade returns the most recently produced trade, if any.
func (b *Book) LastTrade() (trade.Trade, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.trades) == 0 {
		return trade.Trade{}, false
	}
	return b.trades[len(b.trades)-1], true
}

// Snapshot returns the current depth curve for each side plus the full
// per-order listing across both sides.
func (b *Book) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	var orders []*order.Order
	for _, lvl := range b.bids {
		orders = append(orders, lvl.orders...)
	}
	for _, lvl := range b.asks {
		orders = append(orders, lvl.orders...)
	}

	return Snapshot{
		Bids:   depthFor(b.bids, true),
		Asks:   depthFor(b.asks, false),
		Orders: orders,
	}
}

func depthFor(side map[string]*level, descending bool) []DepthLevel {
	levels := make([]*level, 0, len(side))
	for _, lvl := range side {
		levels = append(levels, lvl)
	}

	sort.Slice(levels, func(i, j int) bool {
		if descending {
			return levels[i].price.GreaterThan(levels[j].price)
		}
		return levels[i].price.LessThan(levels[j].price)
	})

	out := make([]DepthLevel, 0, len(levels))
	var cumulative int64
	for _, lvl := range levels {
		var qty int64
		for _, o := range lvl.orders {
			qty += o.RemainingQty
		}
		cumulative += qty
		out = append(out, DepthLevel{Price: lvl.price, CumulativeQuantity: cumulative})
	}

	return out
}
