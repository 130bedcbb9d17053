package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// InvalidPrice represents an error when an order's price fails tick-size validation.
	InvalidPrice ErrorCode = "invalid_price"
	// InvalidQuantity represents an error when an order's quantity fails lot-size validation.
	InvalidQuantity ErrorCode = "invalid_quantity"
	// DuplicateInstrument represents an error when registering an instrument that already exists.
	DuplicateInstrument ErrorCode = "duplicate_instrument"
	// UnknownInstrument represents an error when an order references an instrument the registry has no record of.
	UnknownInstrument ErrorCode = "unknown_instrument"
	// EngineStateError represents an error when an operation is attempted in a state the engine doesn't allow it in.
	EngineStateError ErrorCode = "engine_state_error"
	// InternalSweepError represents an error raised by the worker loop's matching or expiry sweep.
	InternalSweepError ErrorCode = "internal_sweep_error"

	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)
