package sse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootfind/internal/sse"
)

func TestHub_PublishSubscribe(t *testing.T) {
	h := sse.NewHub()

	ch1, cancel1 := h.Subscribe("run")
	ch2, cancel2 := h.Subscribe("run")
	other, cancelOther := h.Subscribe("other")
	defer cancelOther()
	assert.Equal(t, 2, h.Subscribers("run"))

	h.Publish("run", "hello")
	assert.Equal(t, "hello", <-ch1)
	assert.Equal(t, "hello", <-ch2)
	assert.Empty(t, other, "other runs must not receive messages")

	cancel1()
	assert.Equal(t, 1, h.Subscribers("run"))
	cancel2()
	assert.Equal(t, 0, h.Subscribers("run"))

	// без подписчиков публикация ничего не делает
	h.Publish("run", "lost")
}

func TestHub_SlowSubscriberDropsMessages(t *testing.T) {
	h := sse.NewHub()
	ch, cancel := h.Subscribe("run")
	defer cancel()

	for i := 0; i < 200; i++ {
		h.Publish("run", "m")
	}
	require.Equal(t, 64, len(ch), "buffer is full, the rest is dropped")
}
