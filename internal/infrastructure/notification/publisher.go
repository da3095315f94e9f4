package notification

import (
	"context"

	"go.uber.org/zap"
)

// Publisher delivers events. The routing key is the event type.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the log instead of a broker
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.logger.Info("Notification",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.Any("payload", event.Payload),
	)
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error { return nil }
