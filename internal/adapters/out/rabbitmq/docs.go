// Package rabbitmq implements the durable event pipeline on AMQP.
//
// Topology: a durable topic exchange (delivery_events) with one durable
// queue per event type, each bound by its own routing key and configured
// with a dead-letter route into a direct exchange (delivery_events_dlx)
// and a matching <queue>.dead queue. Position reports additionally carry a
// per-queue TTL, since stale positions are worthless.
//
// Reliability: messages are persistent JSON envelopes carrying an
// x-retry-count header. A failing consumer handler causes the message to be
// re-published to its own routing key after an exponential backoff, with the
// header incremented and the original delivery acknowledged. Once the count
// exceeds the configured maximum the delivery is rejected without requeue
// and the broker routes it to the dead-letter queue. Every published message
// therefore ends in either a successful acknowledgment or the DLQ.
package rabbitmq
