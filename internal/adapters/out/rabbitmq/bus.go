package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker topology names.
const (
	// ExchangeEvents is the durable topic exchange all domain events go through.
	ExchangeEvents = "delivery_events"

	// ExchangeDead is the direct exchange dead-lettered messages are routed to.
	ExchangeDead = "delivery_events_dlx"

	// retryCountHeader carries the number of retry re-publishes a message has
	// been through. Monotonically non-decreasing, bounded by MaxRetries.
	retryCountHeader = "x-retry-count"

	// deadSuffix is appended to a queue name to form its dead-letter queue.
	deadSuffix = ".dead"

	// riderLocationTTL bounds how long a position report may sit in its queue.
	// A consumer that is down for longer has no use for stale positions.
	riderLocationTTL = 60 * time.Second
)

// Config holds the broker connection and reliability knobs.
type Config struct {
	URL             string
	MaxRetries      int           // handler retries before dead-lettering, default 3
	RetryBaseDelay  time.Duration // backoff base, delay is base * 2^retryCount, default 1s
	Prefetch        int           // unacked deliveries per consumer, default 10
	ConnectAttempts int           // dial attempts before giving up, default 5
	ConnectInterval time.Duration // pause between dial attempts, default 5s
	Heartbeat       time.Duration // AMQP heartbeat interval, default 60s
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = time.Second
	}
	if c.Prefetch <= 0 {
		c.Prefetch = 10
	}
	if c.ConnectAttempts <= 0 {
		c.ConnectAttempts = 5
	}
	if c.ConnectInterval <= 0 {
		c.ConnectInterval = 5 * time.Second
	}
	if c.Heartbeat <= 0 {
		c.Heartbeat = 60 * time.Second
	}
	return c
}

// Envelope is the wire format of every message on the events exchange.
// Payload stays raw so consumers decode only the event types they handle.
type Envelope struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Handler consumes one delivered envelope. A non-nil error triggers the
// retry path; the same envelope may therefore be delivered more than once
// (at-least-once contract), so handlers must be idempotent.
type Handler func(ctx context.Context, envelope Envelope) error

type subscription struct {
	eventType ports.EventType
	handler   Handler
}

// Bus is the AMQP implementation of the event pipeline. It owns the exchange
// and queue topology, publishes persistent JSON envelopes, and runs the
// retry-with-backoff / dead-letter policy for consumers.
//
// Reconnection is bounded: ConnectAttempts dials ConnectInterval apart, at
// connection establishment and again after a dropped connection. While no
// connection is up, Publish fails fast with errs.ErrConnectivity and the
// caller owns the fallback (no local queueing or outbox).
type Bus struct {
	cfg Config
	log *slog.Logger

	mu     sync.RWMutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	subs   []subscription
	closed chan struct{}

	// Seams for the retry path, replaced in tests. schedule delays fn by d;
	// republish re-enqueues a retried message body with the new retry count.
	schedule  func(d time.Duration, fn func())
	republish func(routingKey string, body []byte, retryCount int32) error
}

// NewBus creates a Bus. Call Connect before publishing or subscribing.
func NewBus(cfg Config, log *slog.Logger) *Bus {
	b := &Bus{
		cfg:    cfg.withDefaults(),
		log:    log.With("component", "event_bus"),
		closed: make(chan struct{}),
	}
	b.schedule = func(d time.Duration, fn func()) {
		time.AfterFunc(d, fn)
	}
	b.republish = b.publishRaw
	return b
}

// Connect dials the broker, declares the topology, and starts watching for
// dropped connections. It tries ConnectAttempts times ConnectInterval apart
// and returns errs.ErrConnectivity when all attempts fail.
func (b *Bus) Connect(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= b.cfg.ConnectAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := b.dial(); err != nil {
			lastErr = err
			b.log.Warn("broker dial failed",
				"attempt", attempt,
				"max_attempts", b.cfg.ConnectAttempts,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-b.closed:
				return errs.NewConnectivityError("rabbitmq", errors.New("bus closed"))
			case <-time.After(b.cfg.ConnectInterval):
			}
			continue
		}

		b.log.Info("broker connected", "url", b.cfg.URL)
		return nil
	}

	return errs.NewConnectivityError("rabbitmq",
		fmt.Errorf("all %d connection attempts failed: %w", b.cfg.ConnectAttempts, lastErr))
}

// Close shuts the bus down. Pending deliveries are dropped back to the broker.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.closed:
		return
	default:
		close(b.closed)
	}

	if b.ch != nil {
		_ = b.ch.Close()
		b.ch = nil
	}
	if b.conn != nil {
		_ = b.conn.Close()
		b.conn = nil
	}
}

// Publish serializes payload into the event envelope and publishes it as a
// persistent message routed by eventType. Fails with errs.ErrConnectivity
// while no broker connection is up.
func (b *Bus) Publish(ctx context.Context, eventType ports.EventType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	body, err := json.Marshal(Envelope{
		Type:      string(eventType),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   raw,
	})
	if err != nil {
		return err
	}

	b.mu.RLock()
	ch := b.ch
	b.mu.RUnlock()
	if ch == nil {
		return errs.NewConnectivityError("rabbitmq", errors.New("not connected"))
	}

	return ch.PublishWithContext(
		ctx,
		ExchangeEvents,
		string(eventType),
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Headers:      amqp.Table{retryCountHeader: int32(0)},
			Body:         body,
		},
	)
}

// Subscribe starts consuming the queue bound for eventType. Deliveries are
// at-least-once: a failing handler causes a delayed re-publish of the same
// message with an incremented retry count, and past MaxRetries the message
// is rejected to the dead-letter queue.
//
// Subscriptions survive reconnects; they are re-established automatically.
func (b *Bus) Subscribe(eventType ports.EventType, handler Handler) error {
	b.mu.Lock()
	b.subs = append(b.subs, subscription{eventType: eventType, handler: handler})
	ch := b.ch
	b.mu.Unlock()

	if ch == nil {
		return errs.NewConnectivityError("rabbitmq", errors.New("not connected"))
	}

	return b.consume(ch, eventType, handler)
}

func (b *Bus) dial() error {
	conn, err := amqp.DialConfig(b.cfg.URL, amqp.Config{
		Heartbeat: b.cfg.Heartbeat,
	})
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err = ch.Qos(b.cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	if err = declareTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	b.mu.Lock()
	b.conn = conn
	b.ch = ch
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		if err = b.consume(ch, sub.eventType, sub.handler); err != nil {
			return err
		}
	}

	go b.watch(conn, ch)
	return nil
}

// watch blocks until the connection drops, then runs the bounded reconnect
// policy. If every attempt fails the bus stays disconnected and publishes
// fail fast until the process is restarted.
func (b *Bus) watch(conn *amqp.Connection, ch *amqp.Channel) {
	notify := conn.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-b.closed:
		return
	case amqpErr := <-notify:
		_ = ch.Close()
		_ = conn.Close()

		b.mu.Lock()
		b.conn = nil
		b.ch = nil
		b.mu.Unlock()

		b.log.Warn("broker connection lost", "error", amqpErr)

		if err := b.Connect(context.Background()); err != nil {
			b.log.Error("broker reconnect exhausted, bus is offline", "error", err)
		}
	}
}

// declareTopology declares the exchanges, one durable queue per event type
// bound to the topic exchange, and the matching dead-letter queues.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeEvents, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(ExchangeDead, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	for _, eventType := range ports.AllEventTypes() {
		queue := string(eventType)
		deadKey := queue + deadSuffix

		args := amqp.Table{
			"x-dead-letter-exchange":    ExchangeDead,
			"x-dead-letter-routing-key": deadKey,
		}
		if eventType == ports.EventRiderLocation {
			args["x-message-ttl"] = int64(riderLocationTTL / time.Millisecond)
		}

		if _, err := ch.QueueDeclare(queue, true, false, false, false, args); err != nil {
			return err
		}
		if err := ch.QueueBind(queue, queue, ExchangeEvents, false, nil); err != nil {
			return err
		}

		if _, err := ch.QueueDeclare(deadKey, true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(deadKey, deadKey, ExchangeDead, false, nil); err != nil {
			return err
		}
	}

	return nil
}

func (b *Bus) consume(ch *amqp.Channel, eventType ports.EventType, handler Handler) error {
	deliveries, err := ch.Consume(string(eventType), "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for d := range deliveries {
			b.process(context.Background(), d.Body, d.Headers, string(eventType), handler, d)
		}
	}()

	return nil
}

// acker abstracts the acknowledgement surface of one delivery.
type acker interface {
	Ack(multiple bool) error
	Nack(multiple bool, requeue bool) error
}

// process runs the handler and applies the retry policy.
//
// On handler failure the retry count is incremented; while it stays within
// MaxRetries the message is re-published to its own routing key after
// RetryBaseDelay * 2^retryCount and the original delivery is acknowledged
// (the message moved, it was not requeued in place). Past MaxRetries the
// delivery is rejected without requeue, which the broker dead-letters.
func (b *Bus) process(
	ctx context.Context,
	body []byte,
	headers amqp.Table,
	routingKey string,
	handler Handler,
	d acker,
) {
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		b.log.Error("undecodable message rejected", "routing_key", routingKey, "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, envelope); err != nil {
		retryCount := headerRetryCount(headers) + 1
		if int(retryCount) > b.cfg.MaxRetries {
			b.log.Error("retries exhausted, dead-lettering",
				"routing_key", routingKey,
				"retry_count", retryCount-1,
				"error", err)
			_ = d.Nack(false, false)
			return
		}

		delay := b.cfg.RetryBaseDelay * (1 << retryCount)
		b.log.Warn("handler failed, scheduling retry",
			"routing_key", routingKey,
			"retry_count", retryCount,
			"delay", delay,
			"error", err)

		b.schedule(delay, func() {
			if pubErr := b.republish(routingKey, body, retryCount); pubErr != nil {
				b.log.Error("retry re-publish failed, message lost",
					"routing_key", routingKey, "error", pubErr)
			}
		})
		_ = d.Ack(false)
		return
	}

	_ = d.Ack(false)
}

// publishRaw re-publishes an already-serialized envelope with the given
// retry count. Used only by the retry path.
func (b *Bus) publishRaw(routingKey string, body []byte, retryCount int32) error {
	b.mu.RLock()
	ch := b.ch
	b.mu.RUnlock()
	if ch == nil {
		return errs.NewConnectivityError("rabbitmq", errors.New("not connected"))
	}

	return ch.PublishWithContext(
		context.Background(),
		ExchangeEvents,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Headers:      amqp.Table{retryCountHeader: retryCount},
			Body:         body,
		},
	)
}

func headerRetryCount(headers amqp.Table) int32 {
	if headers == nil {
		return 0
	}
	switch v := headers[retryCountHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	default:
		return 0
	}
}
