package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"messenger-service/internal/observability"
	"messenger-service/internal/telemetry"
)

// ErrChannelClosed is returned once the broker has closed the publishing channel.
var ErrChannelClosed = errors.New("rabbitmq: channel closed")

// Publisher publishes audit events.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any, headers map[string]string) error
	Close() error
}

// NewPublisher dials RabbitMQ and declares a durable topic exchange. Any
// failure, including an empty URL, yields a publisher that only logs.
func NewPublisher(amqpURL, exchange string) Publisher {
	if amqpURL == "" {
		return fallback("empty amqp url")
	}
	p, err := dial(amqpURL, exchange)
	if err != nil {
		return fallback(err.Error())
	}
	log.Printf("rabbitmq connected exchange=%s", exchange)
	return p
}

func fallback(reason string) noopPublisher {
	log.Printf("rabbitmq disabled, using noop: %s", reason)
	return noopPublisher{reason: reason}
}

func dial(amqpURL, exchange string) (*amqpPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// durable, not auto-deleted, not internal, wait for confirmation
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	p := &amqpPublisher{conn: conn, ch: ch, exchange: exchange}
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if amqpErr, ok := <-closed; ok {
			log.Printf("rabbitmq channel closed: %v", amqpErr)
		}
		p.closed.Store(true)
	}()
	return p, nil
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	closed   atomic.Bool
}

// Publish sends event as persistent JSON with the given headers.
func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event any, headers map[string]string) error {
	if p.closed.Load() {
		observability.IncAMQPPublishError()
		return ErrChannelClosed
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Headers:      make(amqp.Table, len(headers)),
		Body:         body,
	}
	for k, v := range headers {
		msg.Headers[k] = v
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("rabbitmq publish routing_key=%s failed: %v", routingKey, err)
		return err
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	p.closed.Store(true)
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// noopPublisher logs what would have been sent.
type noopPublisher struct {
	reason string
}

func (noopPublisher) Publish(_ context.Context, routingKey string, event any, _ map[string]string) error {
	envelope, ok := event.(telemetry.AuditEnvelope)
	if !ok {
		log.Printf("rabbitmq noop publish routing_key=%s", routingKey)
		return nil
	}
	log.Printf("rabbitmq noop publish routing_key=%s event_type=%s level=%s request_id=%s",
		routingKey, envelope.EventType, envelope.Payload.Level, envelope.RequestID)
	return nil
}

func (noopPublisher) Close() error { return nil }

// PublisherMode names the active backend, "amqp" or "noop".
func PublisherMode(p Publisher) string {
	switch p.(type) {
	case *amqpPublisher:
		return "amqp"
	case noopPublisher:
		return "noop"
	}
	return "unknown"
}

// PublisherNoopReason explains why the noop backend was chosen.
func PublisherNoopReason(p Publisher) string {
	if n, ok := p.(noopPublisher); ok {
		return n.reason
	}
	return ""
}
