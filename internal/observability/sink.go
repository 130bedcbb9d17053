package observability

import (
	"context"
	"time"

	"github.com/lumenmarkets/matching-core/pkg/logger"
	"github.com/lumenmarkets/matching-core/pkg/redis"
)

// Sink is a line-buffered plain-text destination for engine status lines.
// Every line begins with a human-readable timestamp; the format is not
// bit-exact, it is a human surface (engine start/stop, daily reset, a
// sweep with at least one trade, hourly GTD checks, the 30s status tick).
type Sink interface {
	Emit(line string)
}

// WriterSink implements Sink as one structured log line per Emit call.
type WriterSink struct {
	logger *logger.Logger
}

// NewWriterSink returns a Sink backed by the given logger.
func NewWriterSink(l *logger.Logger) *WriterSink {
	return &WriterSink{logger: l}
}

// Emit writes line as an Info-level log entry, timestamped by the call.
func (s *WriterSink) Emit(line string) {
	s.logger.Info(line, logger.Field{Key: "emitted_at", Value: time.Now().Format(time.RFC3339)})
}

// RedisSink fans the same plain-text lines out to a Redis pub/sub channel
// for an out-of-process dashboard. It is never required for the core to
// function; it is an alternative Sink implementation and does not write the
// line to the logger itself.
type RedisSink struct {
	client  redis.Client
	channel string
	logger  *logger.Logger
}

// NewRedisSink returns a Sink that publishes lines to channel over client.
func NewRedisSink(client redis.Client, channel string, l *logger.Logger) *RedisSink {
	return &RedisSink{client: client, channel: channel, logger: l}
}

// Emit publishes line to the configured channel. Publish failures (e.g. no
// subscribers) are logged and swallowed — the status line has already been
// produced, and a missing dashboard subscriber is not a core failure.
func (s *RedisSink) Emit(line string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := s.client.Publish(ctx, s.channel, line); err != nil {
		s.logger.Warn("failed to publish observability line to redis",
			logger.Field{Key: "channel", Value: s.channel},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
}
