package worker

import (
	"context"
	"time"

	"github.com/trattoria-labs/restaurant-service/internal/events"
)

const brokerPublishTimeout = 3 * time.Second

// EventPublisher sends an event to an external broker.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// StartBrokerForwarder relays every change event to publisher. Publishing is
// detached from request cancellation but bounded by brokerPublishTimeout.
// Failures surface through the dispatcher's handler-failure log.
func StartBrokerForwarder(dispatcher events.Dispatcher, publisher EventPublisher) {
	if dispatcher == nil || publisher == nil {
		return
	}
	events.SubscribeAll(dispatcher, events.AllTypes, func(ctx context.Context, e events.Event) error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), brokerPublishTimeout)
		defer cancel()
		return publisher.Publish(ctx, e)
	})
}
