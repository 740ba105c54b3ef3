package realtime

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, ch <-chan []byte) map[string]any {
	t.Helper()
	select {
	case data := <-ch:
		var event map[string]any
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("olay gelmedi")
		return nil
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe("client_a")
	b := bus.Subscribe("client_b")

	bus.Publish("new_order", map[string]any{"orderId": "o1", "restaurantId": "r1"})

	for _, ch := range []<-chan []byte{a, b} {
		event := receiveEvent(t, ch)
		assert.Equal(t, "new_order", event["type"])
		assert.Equal(t, "o1", event["orderId"])
		assert.NotEmpty(t, event["timestamp"])
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe("client_a")
	bus.Unsubscribe("client_a")

	// Kanal kapanmış olmalı
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount())

	// Kapalı aboneye yayın panic üretmemeli
	bus.Publish("order_update", map[string]any{"orderId": "o1"})

	// İkinci unsubscribe sessizce geçer
	bus.Unsubscribe("client_a")
}

func TestLateSubscriberMissesEarlierEvents(t *testing.T) {
	bus := NewBus()
	bus.Publish("new_order", map[string]any{"orderId": "kacti"})

	ch := bus.Subscribe("client_late")
	select {
	case data := <-ch:
		t.Fatalf("geç abone eski olayı aldı: %s", data)
	case <-time.After(50 * time.Millisecond):
	}

	bus.Publish("new_order", map[string]any{"orderId": "yeni"})
	event := receiveEvent(t, ch)
	assert.Equal(t, "yeni", event["orderId"])
}

func TestResubscribeReplacesChannel(t *testing.T) {
	bus := NewBus()
	old := bus.Subscribe("client_a")
	fresh := bus.Subscribe("client_a")

	_, open := <-old
	assert.False(t, open, "eski kanal kapanmalı")
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish("ping", nil)
	receiveEvent(t, fresh)
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("yavas") // hiç okunmayacak

	done := make(chan struct{})
	go func() {
		// Tampon kapasitesinin çok üstünde yayın
		for i := 0; i < subscriberBuffer*4; i++ {
			bus.Publish("spam", map[string]any{"i": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("yavaş abone yayını blokladı")
	}
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			for j := 0; j < 50; j++ {
				bus.Subscribe(id)
				bus.Publish("event", map[string]any{"n": n})
				bus.Unsubscribe(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, bus.SubscriberCount())
}
