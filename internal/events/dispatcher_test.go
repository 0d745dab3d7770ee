package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got []string

	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ResourceID)
		return nil
	})
	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ResourceID)
		return nil
	})
	d.Subscribe(EventProductDeleted, func(_ context.Context, e Event) error {
		got = append(got, "deleted:"+e.ResourceID)
		return nil
	})

	err := d.Publish(context.Background(), New(EventProductCreated, "p1", Actor{UserID: "u1"}))
	assert.NoError(t, err)
	assert.Equal(t, []string{"first:p1", "second:p1"}, got)
}

func TestDispatcherKeepsGoingAfterFailure(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	boom := errors.New("boom")
	called := false

	d.Subscribe(EventUserDeleted, func(context.Context, Event) error { return boom })
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserDeleted, "u1", Actor{}))
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventUserUpdated, "u1", Actor{UserID: "admin"}, "name", "role")

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, []string{"name", "role"}, e.Changed)
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var seen []EventType

	SubscribeAll(d, []EventType{EventProductUpdated, EventProductDeleted}, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})
	d.Subscribe(EventProductUpdated, func(context.Context, Event) error { panic("bad handler") })

	err := d.Publish(context.Background(), New(EventProductUpdated, "p1", Actor{}))
	assert.ErrorContains(t, err, "bad handler")
	assert.NoError(t, d.Publish(context.Background(), New(EventProductDeleted, "p1", Actor{})))
	assert.Equal(t, []EventType{EventProductUpdated, EventProductDeleted}, seen)
}
