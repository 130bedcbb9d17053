package engine

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lumenmarkets/matching-core/internal/domain/order"
	"github.com/lumenmarkets/matching-core/pkg/logger"
)

// Submit looks up the order's routing triple, validates it against the
// matched instrument, and — on success — inserts it and runs an immediate
// matching sweep before returning. A false return means the order never
// entered the book; the caller is expected to re-submit with corrected
// inputs. Each call is tagged with a fresh trace id carried only on the
// structured log line, for correlating a submission across log aggregation
// without adding anything to the domain's integer order identity (spec §3).
func (e *Engine) Submit(o *order.Order) bool {
	traceID := ulid.Make().String()

	inst, ok := e.registry.Find(o.RoutingKey())
	if !ok {
		e.logger.WarnContext(e.context(), "order rejected: unknown instrument",
			logger.Field{Key: "trace_id", Value: traceID},
			logger.Field{Key: "order_id", Value: o.OrderID},
		)
		return false
	}

	if err := o.Validate(inst, e.config.PriceEpsilon); err != nil {
		e.emitWithFields(
			fmt.Sprintf("order %d rejected: %s", o.OrderID, err.Error()),
			logger.Field{Key: "trace_id", Value: traceID},
		)
		return false
	}

	e.book.Insert(o)
	e.logger.DebugContext(e.context(), "order accepted",
		logger.Field{Key: "trace_id", Value: traceID},
		logger.Field{Key: "order_id", Value: o.OrderID},
	)
	e.sweep(time.Now())

	return true
}
