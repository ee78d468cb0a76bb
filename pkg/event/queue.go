// pkg/event/queue.go

package event

import "container/heap"

// innerHeap is the container/heap.Interface implementation backing
// Queue. Grounded on the pack's discrete-event-simulation examples,
// which use the same (time, monotonic-sequence) tie-break rule over a
// container/heap min-heap.
type innerHeap []*Event

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *innerHeap) Push(x any) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a min-priority queue of Events ordered by (Time, insertion
// sequence). The kernel schedules into the queue via Push; only the
// main dispatch loop pops from it via Pop.
type Queue struct {
	h       innerHeap
	nextSeq int64
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push schedules e into the queue, assigning it the next insertion
// sequence number.
func (q *Queue) Push(e *Event) {
	q.nextSeq++
	e.seq = q.nextSeq
	heap.Push(&q.h, e)
}

// Pop removes and returns the earliest-scheduled event in the queue.
// It panics if the queue is empty; callers must check Len first.
func (q *Queue) Pop() *Event {
	return heap.Pop(&q.h).(*Event)
}

// Peek returns the earliest-scheduled event without removing it, and
// whether the queue is nonempty.
func (q *Queue) Peek() (*Event, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return q.h[0], true
}

// Len returns the number of events currently queued.
func (q *Queue) Len() int { return q.h.Len() }

// Drain removes and returns every remaining event, in the same
// (Time, insertion sequence) order that repeated Pop calls would give.
// Used by the kernel's horizon-truncation finalization pass, which
// needs to inspect every leftover event.
func (q *Queue) Drain() []*Event {
	remaining := make([]*Event, 0, q.h.Len())
	for q.h.Len() > 0 {
		remaining = append(remaining, heap.Pop(&q.h).(*Event))
	}
	return remaining
}
