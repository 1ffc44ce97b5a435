package fallback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

func TestBroker_FanOut(t *testing.T) {
	broker := NewBroker()

	ch1, cancel1 := broker.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := broker.Subscribe(1)
	defer cancel2()

	item := tracker.Item{URL: "https://example.com/a"}
	broker.Publish(item)

	for i, ch := range []<-chan tracker.Item{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, item.URL, got.URL)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive notification", i)
		}
	}
}

func TestBroker_PublishNeverBlocks(t *testing.T) {
	broker := NewBroker()

	_, cancel := broker.Subscribe(1)
	defer cancel()

	// A full subscriber buffer drops notifications instead of stalling.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			broker.Publish(tracker.Item{URL: "https://example.com/a"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	broker := NewBroker()

	ch, cancel := broker.Subscribe(1)
	cancel()

	_, open := <-ch
	require.False(t, open, "cancel should close the channel")

	// Publishing after cancel must not panic on the closed channel.
	broker.Publish(tracker.Item{URL: "https://example.com/a"})
}
