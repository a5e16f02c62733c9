package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Broadcast is one payload destined for every live member of a channel
// room.
type Broadcast struct {
	ChannelURL string
	Payload    []byte
}

// Sink receives broadcasts once a worker dequeues them. The live
// gateway's hub is the production sink.
type Sink interface {
	Deliver(b Broadcast)
}

// Dispatcher routes broadcasts to a fixed set of workers using
// consistent hashing on the channel URL, so fan-out for any single
// channel stays in order even under concurrent senders.
type Dispatcher struct {
	workers []chan Broadcast
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Broadcast, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Broadcast, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	d.log.Info().Int("workers", len(d.workers)).Msg("broadcast dispatcher started")
}

// Enqueue sends a broadcast to the worker responsible for its channel.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(b Broadcast) {
	idx := d.shardIndex(b.ChannelURL)
	d.workers[idx] <- b
	metrics.BroadcastQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a channel URL deterministically to a worker index.
func (d *Dispatcher) shardIndex(channelURL string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(channelURL))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Broadcast) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-ch:
			if !ok {
				return
			}
			d.sink.Deliver(b)
			metrics.BroadcastQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
