package ports

import "context"

// EventPublisher pushes domain events to the message broker. Publishing is
// best-effort from the caller's point of view: a broker outage must never
// fail the request that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, key []byte, value []byte) error
}
