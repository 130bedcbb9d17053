package orderbook

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
	"github.com/lumenmarkets/matching-core/internal/domain/trade"
)

// level is a FIFO queue of resting orders at one price. Orders of several
// instruments may share a level; only same-routing-triple pairs may cross.
type level struct {
	price  decimal.Decimal
	orders []*order.Order
}

// Book is a two-sided, price-time-priority order book. It may hold orders
// for more than one instrument at once; compatibility is checked per pair
// during the matching sweep, never by the book's price-level structure.
type Book struct {
	mu sync.Mutex

	bids map[string]*level
	asks map[string]*level

	trades      []trade.Trade
	nextTradeID int64
}

// New returns an empty Book.
func New() *Book {
	return &Book{
		bids: make(map[string]*level),
		asks: make(map[string]*level),
	}
}

// priceKey normalises a price to a canonical string so that equal prices
// compare equal as map keys regardless of how their decimal.Decimal value
// was originally constructed.
func priceKey(p decimal.Decimal) string {
	return p.Round(8).String()
}

// Insert places a validated order at the tail of its side's queue for
// order.Price. No matching occurs here.
func (b *Book) Insert(o *order.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.insertLocked(o)
}

func (b *Book) insertLocked(o *order.Order) {
	side := b.bids
	if o.IsAsk() {
		side = b.asks
	}

	key := priceKey(o.Price)
	lvl, ok := side[key]
	if !ok {
		lvl = &level{price: o.Price}
		side[key] = lvl
	}

	lvl.orders = append(lvl.orders, o)
}

// bestLevel scans side for the best price level: the maximum price for the
// bid side, the minimum for the ask side. Go maps carry no iteration order,
// so this is a linear scan every call, same as the sibling retrieval
// pack's sortedPrices approach applied to a single extremum instead of a
// full sort.
func bestLevel(side map[string]*level, pickMax bool) (string, *level, bool) {
	var bestKey string
	var best *level

	for key, lvl := range side {
		if best == nil {
			bestKey, best = key, lvl
			continue
		}
		if pickMax && lvl.price.GreaterThan(best.price) {
			bestKey, best = key, lvl
		}
		if !pickMax && lvl.price.LessThan(best.price) {
			bestKey, best = key, lvl
		}
	}

	return bestKey, best, best != nil
}

func minQty(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
