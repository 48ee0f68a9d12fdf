package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange = "orders_topic"
	publishTimeout = 5 * time.Second
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher publishes order events to the orders_topic exchange.
type RabbitPublisher struct {
	ch       amqpChannel
	exchange string
	logger   *slog.Logger
	closeFn  func() error
}

// NewRabbitPublisher creates a publisher on an open channel.
func NewRabbitPublisher(ch amqpChannel, logger *slog.Logger) *RabbitPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RabbitPublisher{
		ch:       ch,
		exchange: OrdersExchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
		closeFn:  func() error { return nil },
	}
}

// DialRabbitPublisher connects to the broker and declares the durable topic
// exchange.
func DialRabbitPublisher(url string, logger *slog.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		OrdersExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", OrdersExchange, err)
	}

	p := NewRabbitPublisher(ch, logger)
	p.closeFn = conn.Close
	return p, nil
}

// Publish sends each event to the order exchange, routed by the new status.
func (p *RabbitPublisher) Publish(ctx context.Context, events []order.Event) error {
	var errs []error
	for _, e := range events {
		if err := p.publishOne(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("order %s %s: %w", e.OrderID, e.Kind, err))
		}
	}
	return errors.Join(errs...)
}

func (p *RabbitPublisher) publishOne(ctx context.Context, e order.Event) error {
	body, err := json.Marshal(newOrderEventMessage(e))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := RoutingKey(e)
	err = p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    e.OccurredAt,
		})
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "order event published", "routing_key", key, "order_id", e.OrderID.String())
	return nil
}

// Close closes the channel.
func (p *RabbitPublisher) Close() error {
	return p.closeFn()
}
