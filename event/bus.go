package event

import (
	"sync"

	"eecsim-go/errcode"
)

// Callback receives a dispatched event. data is nil when the producer
// published without a payload. Callbacks must not retain data past the call.
type Callback func(kind Kind, data *Payload, userData any)

type subscriber struct {
	id   string
	cb   Callback
	user any
}

// Config sizes a Bus. Zero values pick the defaults.
type Config struct {
	QueueSize      int // queued events before Publish starts dropping (default 32)
	MaxSubscribers int // registrations per kind (default 8)
}

// Stats is a snapshot of the bus counters.
type Stats struct {
	Published uint64 // Publish calls that enqueued or hit the no-subscriber fast path
	Processed uint64 // entries delivered by Process
	Dropped   uint64 // Publish calls rejected by a full queue
	QueueLen  int
}

// Bus ties the subscriber registry and the bounded queue together. It is an
// owned object: construct one per simulator (or per test) rather than
// sharing process-wide state.
//
// The registry and queue are guarded by a mutex so the diagnostics server
// can read stats while the frame loop runs; dispatch itself happens outside
// the lock, which keeps re-entrant Publish from inside a callback legal.
type Bus struct {
	mu     sync.Mutex
	cfg    Config
	subs   [KindCount][]subscriber
	q      *queue
	closed bool

	published uint64
	processed uint64
	dropped   uint64
}

// New creates a ready-to-use bus.
func New(cfg Config) *Bus {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 32
	}
	if cfg.MaxSubscribers <= 0 {
		cfg.MaxSubscribers = 8
	}
	return &Bus{cfg: cfg, q: newQueue(cfg.QueueSize)}
}

// Subscribe registers cb for kind under id. Re-subscribing an existing
// (kind, id) pair updates the callback and userData in place, keeping its
// position in dispatch order.
func (b *Bus) Subscribe(kind Kind, id string, cb Callback, userData any) error {
	if !kind.Valid() {
		return errcode.InvalidKind
	}
	if id == "" || cb == nil {
		return errcode.InvalidParams
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errcode.NotInitialized
	}
	for i := range b.subs[kind] {
		if b.subs[kind][i].id == id {
			b.subs[kind][i].cb = cb
			b.subs[kind][i].user = userData
			return nil
		}
	}
	if len(b.subs[kind]) >= b.cfg.MaxSubscribers {
		return errcode.Capacity
	}
	b.subs[kind] = append(b.subs[kind], subscriber{id: id, cb: cb, user: userData})
	return nil
}

// Unsubscribe removes the registration for (kind, id), preserving the order
// of the remaining subscribers. It reports whether anything was removed.
// The removal applies to future dispatches only; an event already popped by
// Process still reaches the subscriber set captured at its delivery.
func (b *Bus) Unsubscribe(kind Kind, id string) bool {
	if !kind.Valid() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	for i := range b.subs[kind] {
		if b.subs[kind][i].id == id {
			b.subs[kind] = append(b.subs[kind][:i], b.subs[kind][i+1:]...)
			return true
		}
	}
	return false
}

// UnsubscribeAll clears every subscriber for kind.
func (b *Bus) UnsubscribeAll(kind Kind) {
	if !kind.Valid() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.subs[kind] = nil
}

// SubscriberCount returns the current registration count for kind.
func (b *Bus) SubscriberCount(kind Kind) int {
	if !kind.Valid() {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[kind])
}

// Publish enqueues an event for the next Process pass. A kind with no
// subscribers is a successful no-op; a full queue drops the event, bumps
// the drop counter and returns QueueFull. After Close, Publish degrades to
// immediate synchronous dispatch so late producers still reach any
// subscriber wired outside the bus lifecycle.
func (b *Bus) Publish(kind Kind, data *Payload) error {
	if !kind.Valid() {
		return errcode.InvalidKind
	}
	b.mu.Lock()
	if len(b.subs[kind]) == 0 {
		b.published++
		b.mu.Unlock()
		return nil
	}
	if b.closed {
		targets := snapshot(b.subs[kind])
		b.mu.Unlock()
		deliver(targets, kind, data)
		return nil
	}
	e := entry{kind: kind, hasData: data != nil}
	if data != nil {
		e.data = *data
	}
	if !b.q.push(e) {
		b.dropped++
		b.mu.Unlock()
		return errcode.QueueFull
	}
	b.published++
	b.mu.Unlock()
	return nil
}

// PublishImmediate bypasses the queue and invokes every subscriber for kind
// synchronously, in registration order, on the caller's stack. Use it when
// delivery must be ordered relative to the caller's subsequent code.
func (b *Bus) PublishImmediate(kind Kind, data *Payload) {
	if !kind.Valid() {
		return
	}
	b.mu.Lock()
	targets := snapshot(b.subs[kind])
	b.mu.Unlock()
	deliver(targets, kind, data)
}

// Process drains the queue, delivering each entry to its kind's subscribers
// in registration order. The drain length is snapshotted at entry: events
// published re-entrantly from inside a callback wait for the next Process
// call, so a self-republishing subscriber cannot starve the loop.
func (b *Bus) Process() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	n := b.q.len()
	b.mu.Unlock()

	for i := 0; i < n; i++ {
		b.mu.Lock()
		e, ok := b.q.pop()
		if !ok {
			b.mu.Unlock()
			return
		}
		b.processed++
		targets := snapshot(b.subs[e.kind])
		b.mu.Unlock()

		if e.hasData {
			deliver(targets, e.kind, &e.data)
		} else {
			deliver(targets, e.kind, nil)
		}
	}
}

// QueueLen returns the current queue occupancy.
func (b *Bus) QueueLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.len()
}

// Dropped returns the number of events rejected by a full queue.
func (b *Bus) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Published: b.published,
		Processed: b.processed,
		Dropped:   b.dropped,
		QueueLen:  b.q.len(),
	}
}

// Close clears all subscriptions and discards queued entries without
// dispatching them. Subsequent operations are failing no-ops, except
// Publish (see above).
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for k := range b.subs {
		b.subs[k] = nil
	}
	b.q.reset()
	b.closed = true
}

func snapshot(subs []subscriber) []subscriber {
	if len(subs) == 0 {
		return nil
	}
	out := make([]subscriber, len(subs))
	copy(out, subs)
	return out
}

func deliver(targets []subscriber, kind Kind, data *Payload) {
	for _, s := range targets {
		s.cb(kind, data, s.user)
	}
}
