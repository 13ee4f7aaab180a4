package messaging

import (
	"context"
	"fmt"
	"sync"

	"listing-search/pkg/config"
	"listing-search/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Decision tells the consumer how to settle a delivery.
type Decision int

const (
	Ack Decision = iota
	// Requeue puts the delivery back for another attempt.
	Requeue
	// Discard drops the delivery, dead-lettering it if the queue has a DLX.
	Discard
)

func (d Decision) String() string {
	switch d {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "discard"
	}
}

// Handler processes one delivery. It must not ack or nack itself.
type Handler func(ctx context.Context, d amqp.Delivery) Decision

// Consumer reads one durable queue bound to a topic exchange.
type Consumer struct {
	cfg  config.RabbitMQConfig
	conn *amqp.Connection
	ch   *amqp.Channel
	wg   sync.WaitGroup
}

func NewConsumer(cfg config.RabbitMQConfig) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c := &Consumer{cfg: cfg, conn: conn, ch: ch}
	if err := c.setup(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) setup() error {
	if err := c.ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	if err := c.ch.ExchangeDeclare(
		c.cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", c.cfg.Exchange, err)
	}
	if _, err := c.ch.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", c.cfg.Queue, err)
	}
	if err := c.ch.QueueBind(c.cfg.Queue, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", c.cfg.Queue, c.cfg.Exchange, err)
	}
	return nil
}

// Consume blocks until ctx is cancelled or the broker closes the connection. Deliveries are
// handled concurrently, bounded by the prefetch count.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.ch.Consume(
		c.cfg.Queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer on queue '%s': %w", c.cfg.Queue, err)
	}
	closed := c.conn.NotifyClose(make(chan *amqp.Error, 1))
	logger.GlobalLogger.Printf("Waiting for messages on queue %s", c.cfg.Queue)

	defer c.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr, ok := <-closed:
			if !ok || amqpErr == nil {
				return nil
			}
			return fmt.Errorf("rabbitmq connection closed: %w", amqpErr)
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.wg.Add(1)
			go func(d amqp.Delivery) {
				defer c.wg.Done()
				Settle(d, handler(ctx, d))
			}(d)
		}
	}
}

// Settle acknowledges d according to decision.
func Settle(d amqp.Delivery, decision Decision) {
	var err error
	switch decision {
	case Ack:
		err = d.Ack(false)
	case Requeue:
		err = d.Nack(false, true)
	default:
		err = d.Nack(false, false)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("failed to %s delivery %d: %v", decision, d.DeliveryTag, err)
	}
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}
