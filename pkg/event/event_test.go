package event_test

import (
	"testing"

	"github.com/aureajoias/aurea/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := event.NewBus()

	var a, b int
	bus.Subscribe("auth.changed", func(_ interface{}) { a++ })
	bus.Subscribe("auth.changed", func(_ interface{}) { b++ })

	bus.Publish("auth.changed", nil)
	bus.Publish("auth.changed", nil)

	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestPublishCarriesPayload(t *testing.T) {
	bus := event.NewBus()

	var got interface{}
	bus.Subscribe("auth.changed", func(p interface{}) { got = p })

	bus.Publish("auth.changed", "signed-in")
	assert.Equal(t, "signed-in", got)
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := event.NewBus()

	var n int
	sub := bus.Subscribe("auth.changed", func(_ interface{}) { n++ })

	bus.Publish("auth.changed", nil)
	sub.Cancel()
	bus.Publish("auth.changed", nil)

	assert.Equal(t, 1, n, "no deliveries may occur after Cancel")
}

func TestCancelIsIdempotent(t *testing.T) {
	bus := event.NewBus()
	sub := bus.Subscribe("auth.changed", func(_ interface{}) {})

	sub.Cancel()
	sub.Cancel() // must not panic

	bus.Publish("auth.changed", nil)
}

func TestTopicsAreIsolated(t *testing.T) {
	bus := event.NewBus()

	var n int
	bus.Subscribe("auth.changed", func(_ interface{}) { n++ })

	bus.Publish("bulk.progress", nil)
	assert.Zero(t, n)
}
