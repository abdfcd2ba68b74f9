package event

// queue is a fixed-capacity FIFO ring of event entries. head is the next
// write slot, tail the next read slot; count disambiguates full from empty
// when head == tail. The bus serialises access, so no locking here.
type queue struct {
	buf   []entry
	head  uint32
	tail  uint32
	count uint32
}

func newQueue(capacity int) *queue {
	if capacity <= 0 {
		capacity = 32
	}
	return &queue{buf: make([]entry, capacity)}
}

func (q *queue) cap() int { return len(q.buf) }
func (q *queue) len() int { return int(q.count) }

// push appends e, failing without blocking when the ring is full.
func (q *queue) push(e entry) bool {
	if q.count >= uint32(len(q.buf)) {
		return false
	}
	q.buf[q.head] = e
	q.head = (q.head + 1) % uint32(len(q.buf))
	q.count++
	return true
}

// pop removes and returns the oldest entry, failing when empty.
func (q *queue) pop() (entry, bool) {
	if q.count == 0 {
		return entry{}, false
	}
	e := q.buf[q.tail]
	q.buf[q.tail] = entry{} // drop the Str reference
	q.tail = (q.tail + 1) % uint32(len(q.buf))
	q.count--
	return e, true
}

// reset discards all queued entries without dispatching them.
func (q *queue) reset() {
	for i := range q.buf {
		q.buf[i] = entry{}
	}
	q.head = 0
	q.tail = 0
	q.count = 0
}
