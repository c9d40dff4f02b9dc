package event

import (
	"banking-engine/internal/pkg/apperrors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultRoutingKey = "account.notification"
	publisherAppID    = "banking-engine"
	sinkName          = "RabbitMQ"
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type channelOpener func() (amqpChannel, error)

type NotificationEvent struct {
	MessageID string    `json:"messageId"`
	Sink      string    `json:"sink"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RabbitMQSink forwards every broadcast message to a topic exchange.
type RabbitMQSink struct {
	open         channelOpener
	exchangeName string
	routingKey   string
	logger       *slog.Logger
}

func NewRabbitMQSink(conn *amqp.Connection, exchangeName, routingKey string, logger *slog.Logger) (*RabbitMQSink, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	return newRabbitMQSink(func() (amqpChannel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}, exchangeName, routingKey, logger)
}

func newRabbitMQSink(open channelOpener, exchangeName, routingKey string, logger *slog.Logger) (*RabbitMQSink, error) {
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}

	tempCh, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	err = tempCh.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQSink{
		open:         open,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		logger:       logger.With("component", "RabbitMQSink", "exchange", exchangeName),
	}, nil
}

func (s *RabbitMQSink) Name() string {
	return sinkName
}

func (s *RabbitMQSink) Update(ctx context.Context, message string) error {
	evt := NotificationEvent{
		MessageID: uuid.NewString(),
		Sink:      sinkName,
		Message:   message,
		Timestamp: time.Now(),
	}
	if err := s.publish(ctx, evt); err != nil {
		return apperrors.WrapDeliveryError(sinkName, err)
	}
	return nil
}

func (s *RabbitMQSink) publish(ctx context.Context, evt NotificationEvent) error {
	logCtx := s.logger.With(slog.String("routingKey", s.routingKey), slog.String("messageId", evt.MessageID))

	channel, err := s.open()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	body, err := json.Marshal(evt)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logCtx.DebugContext(ctx, "Publishing message", "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		s.exchangeName,
		s.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.MessageID,
			Timestamp:    evt.Timestamp,
			Body:         body,
			AppId:        publisherAppID,
		},
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.DebugContext(ctx, "Successfully published message")
	return nil
}

func DialURL(host string, port int, username, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", username, password, host, port)
}
