package input

// The default queue capacity.
const DefaultQueueSize = 1024

// Queue buffers input events between the window callbacks that produce them
// and the render loop that polls them once per tick.
type Queue struct {
	events  chan Event
	dropped uint64
}

// Create a new queue with the given capacity. A non-positive size selects
// DefaultQueueSize.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		events: make(chan Event, size),
	}
}

// Push an event without blocking. Events are dropped when the queue is full.
func (q *Queue) Push(ev Event) {
	if q == nil || ev == nil {
		return
	}
	select {
	case q.events <- ev:
	default:
		q.dropped++
	}
}

// Remove and return all queued events in arrival order.
func (q *Queue) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-q.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Get the number of events dropped because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped
}
