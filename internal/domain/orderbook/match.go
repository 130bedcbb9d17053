package orderbook

import (
	"time"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
	"github.com/lumenmarkets/matching-core/internal/domain/trade"
)

// Match runs a matching sweep under the book's single exclusive lock and
// returns the trades produced during this call, in the order produced. The
// sweep never panics and never retries; an uncrossed book simply yields no
// trades.
func (b *Book) Match(now time.Time) []trade.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()

	var produced []trade.Trade

	for {
		if len(b.bids) == 0 || len(b.asks) == 0 {
			break
		}

		_, bidLevel, _ := bestLevel(b.bids, true)
		_, askLevel, _ := bestLevel(b.asks, false)

		if bidLevel.price.LessThan(askLevel.price) {
			break // no crossed book
		}

		bidIdx, askIdx, found := findCompatiblePair(bidLevel.orders, askLevel.orders)
		if !found {
			// Top-of-book pair is incompatible across instruments and no
			// compatible pair exists further down either queue: bounded
			// progress guarantee reached, stop without reordering queues.
			break
		}

		bidOrder := bidLevel.orders[bidIdx]
		askOrder := askLevel.orders[askIdx]

		tradeQty := minQty(bidOrder.RemainingQty, askOrder.RemainingQty)

		b.nextTradeID++
		tr := trade.Trade{
			TradeID:     b.nextTradeID,
			BuyOrderID:  bidOrder.OrderID,
			SellOrderID: askOrder.OrderID,
			MarketCode:  askOrder.MarketCode,
			Currency:    askOrder.Currency,
			Price:       askOrder.Price, // resting-ask price wins on a cross
			Quantity:    tradeQty,
			Timestamp:   now,
		}

		bidOrder.RemainingQty -= tradeQty
		askOrder.RemainingQty -= tradeQty

		b.trades = append(b.trades, tr)
		produced = append(produced, tr)

		b.removeWhereLocked(func(o *order.Order) bool { return o.IsFilled() })
	}

	return produced
}

// findCompatiblePair searches bids then asks, front to back, for the first
// pair sharing a routing triple, mirroring the nested scan the sweep
// algorithm specifies: for each bid in order, scan the ask queue until a
// compatible ask turns up.
func findCompatiblePair(bids, asks []*order.Order) (bidIdx, askIdx int, found bool) {
	for bi, bidOrder := range bids {
		for ai, askOrder := range asks {
			if bidOrder.CompatibleWith(askOrder) {
				return bi, ai, true
			}
		}
	}
	return 0, 0, false
}
