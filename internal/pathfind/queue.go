package pathfind

import "container/heap"

// PriorityQueue is a min-heap keyed by priority with O(1) membership tests.
//
// Enqueue of an item already present is ignored: the first priority wins.
// Use Update to re-prioritise an enqueued item. Equal priorities are ordered
// by heap structure, which is deterministic for a fixed insertion order.
type PriorityQueue[T comparable] struct {
	h queueHeap[T]
}

// NewPriorityQueue creates a queue with room for capacity items.
func NewPriorityQueue[T comparable](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{h: queueHeap[T]{
		entries: make([]queueEntry[T], 0, capacity),
		pos:     make(map[T]int, capacity),
	}}
}

// Len returns the number of enqueued items.
func (q *PriorityQueue[T]) Len() int { return len(q.h.entries) }

// Enqueue adds item with the given priority. It reports false and leaves the
// queue untouched if item is already present.
func (q *PriorityQueue[T]) Enqueue(item T, priority float64) bool {
	if q.Contains(item) {
		return false
	}
	heap.Push(&q.h, queueEntry[T]{item: item, priority: priority})
	return true
}

// Dequeue removes and returns the minimum-priority item.
// It panics with ErrQueueUnderflow on an empty queue.
func (q *PriorityQueue[T]) Dequeue() T {
	if q.Len() == 0 {
		panic(ErrQueueUnderflow)
	}
	return heap.Pop(&q.h).(queueEntry[T]).item
}

// Contains reports whether item is enqueued.
func (q *PriorityQueue[T]) Contains(item T) bool {
	_, ok := q.h.pos[item]
	return ok
}

// Priority returns the current priority of item.
func (q *PriorityQueue[T]) Priority(item T) (float64, bool) {
	i, ok := q.h.pos[item]
	if !ok {
		return 0, false
	}
	return q.h.entries[i].priority, true
}

// Update changes the priority of an enqueued item and restores heap order.
// It reports false if item is not enqueued.
func (q *PriorityQueue[T]) Update(item T, priority float64) bool {
	i, ok := q.h.pos[item]
	if !ok {
		return false
	}
	q.h.entries[i].priority = priority
	heap.Fix(&q.h, i)
	return true
}

// Clear empties the queue, keeping allocated storage for reuse.
func (q *PriorityQueue[T]) Clear() {
	clear(q.h.entries)
	q.h.entries = q.h.entries[:0]
	clear(q.h.pos)
}

type queueEntry[T comparable] struct {
	item     T
	priority float64
}

// queueHeap implements container/heap and keeps pos in sync on every move.
type queueHeap[T comparable] struct {
	entries []queueEntry[T]
	pos     map[T]int
}

func (h *queueHeap[T]) Len() int { return len(h.entries) }

func (h *queueHeap[T]) Less(i, j int) bool {
	return h.entries[i].priority < h.entries[j].priority
}

func (h *queueHeap[T]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.pos[h.entries[i].item] = i
	h.pos[h.entries[j].item] = j
}

func (h *queueHeap[T]) Push(x any) {
	e := x.(queueEntry[T])
	h.pos[e.item] = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *queueHeap[T]) Pop() any {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries[n-1] = queueEntry[T]{}
	h.entries = h.entries[:n-1]
	delete(h.pos, e.item)
	return e
}
