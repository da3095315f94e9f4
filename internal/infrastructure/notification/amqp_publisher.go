package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeType is the kind of exchange notifications are published to
const ExchangeType = "topic"

// AMQPPublisher publishes events to a RabbitMQ topic exchange
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewAMQPPublisher dials the broker, retrying cfg.DialRetries times, and
// declares the durable topic exchange.
func NewAMQPPublisher(cfg config.MessagingConfig, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := dial(cfg, logger)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		ExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	logger.Info("Connected to message broker", zap.String("exchange", cfg.Exchange))
	return &AMQPPublisher{conn: conn, ch: ch, exchange: cfg.Exchange, logger: logger}, nil
}

func dial(cfg config.MessagingConfig, logger *zap.Logger) (*amqp.Connection, error) {
	attempts := cfg.DialRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			return conn, nil
		}
		logger.Warn("Failed to connect to message broker",
			zap.Int("attempt", i+1),
			zap.Error(err))
		if i < attempts-1 {
			time.Sleep(cfg.RetryInterval)
		}
	}
	return nil, fmt.Errorf("could not connect to message broker: %w", err)
}

// Publish sends the event as persistent JSON with the event type as
// routing key.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx,
		p.exchange,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		},
	)
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.logger.Warn("Failed to close channel", zap.Error(err))
	}
	return p.conn.Close()
}

// NewPublisher returns the AMQP publisher when messaging is enabled, falling
// back to the log publisher when the broker cannot be reached.
func NewPublisher(cfg config.MessagingConfig, logger *zap.Logger) Publisher {
	if !cfg.Enabled {
		logger.Info("Messaging disabled, notifications are logged")
		return NewLogPublisher(logger)
	}
	p, err := NewAMQPPublisher(cfg, logger)
	if err != nil {
		logger.Warn("Message broker unavailable, notifications are logged", zap.Error(err))
		return NewLogPublisher(logger)
	}
	return p
}
