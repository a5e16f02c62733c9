package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type captureSink struct {
	mu       sync.Mutex
	byRoom   map[string][]string
	received int
}

func newCaptureSink() *captureSink {
	return &captureSink{byRoom: make(map[string][]string)}
}

func (s *captureSink) Deliver(b Broadcast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRoom[b.ChannelURL] = append(s.byRoom[b.ChannelURL], string(b.Payload))
	s.received++
}

func (s *captureSink) waitFor(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		got := s.received
		s.mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d deliveries", n)
}

func TestDispatcher_DeliversAll(t *testing.T) {
	sink := newCaptureSink()
	d := NewDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := range 10 {
		d.Enqueue(Broadcast{ChannelURL: "ch_a", Payload: fmt.Appendf(nil, "m%d", i)})
	}
	sink.waitFor(t, 10)
}

func TestDispatcher_PerChannelOrdering(t *testing.T) {
	sink := newCaptureSink()
	d := NewDispatcher(3, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const perChannel = 50
	for i := range perChannel {
		d.Enqueue(Broadcast{ChannelURL: "ch_a", Payload: fmt.Appendf(nil, "a%d", i)})
		d.Enqueue(Broadcast{ChannelURL: "ch_b", Payload: fmt.Appendf(nil, "b%d", i)})
	}
	sink.waitFor(t, 2*perChannel)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for room, prefix := range map[string]string{"ch_a": "a", "ch_b": "b"} {
		msgs := sink.byRoom[room]
		if len(msgs) != perChannel {
			t.Fatalf("%s: expected %d messages, got %d", room, perChannel, len(msgs))
		}
		for i, msg := range msgs {
			if want := fmt.Sprintf("%s%d", prefix, i); msg != want {
				t.Fatalf("%s: out of order at %d: got %q, want %q", room, i, msg, want)
			}
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newCaptureSink(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
