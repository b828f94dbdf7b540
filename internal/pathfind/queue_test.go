package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := NewPriorityQueue[string](4)
	q.Enqueue("c", 3)
	q.Enqueue("a", 1)
	q.Enqueue("d", 4)
	q.Enqueue("b", 2)

	require.Equal(t, 4, q.Len())
	var got []string
	for q.Len() > 0 {
		got = append(got, q.Dequeue())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestPriorityQueueFirstInsertWins(t *testing.T) {
	q := NewPriorityQueue[string](4)

	assert.True(t, q.Enqueue("a", 5))
	assert.False(t, q.Enqueue("a", 1), "second enqueue must be ignored")
	assert.True(t, q.Contains("a"))
	assert.Equal(t, 1, q.Len())

	p, ok := q.Priority("a")
	require.True(t, ok)
	assert.Equal(t, 5.0, p)

	q.Enqueue("b", 3)
	assert.Equal(t, "b", q.Dequeue(), "a keeps priority 5")
	assert.Equal(t, "a", q.Dequeue())
}

func TestPriorityQueueUnderflow(t *testing.T) {
	q := NewPriorityQueue[int32](0)
	assert.PanicsWithError(t, ErrQueueUnderflow.Error(), func() { q.Dequeue() })
}

func TestPriorityQueueContainsTracksDequeue(t *testing.T) {
	q := NewPriorityQueue[int32](2)
	q.Enqueue(1, 1)
	q.Enqueue(2, 2)

	assert.Equal(t, int32(1), q.Dequeue())
	assert.False(t, q.Contains(1))
	assert.True(t, q.Contains(2))

	_, ok := q.Priority(1)
	assert.False(t, ok)
}

func TestPriorityQueueUpdate(t *testing.T) {
	q := NewPriorityQueue[string](4)
	q.Enqueue("a", 1)
	q.Enqueue("b", 2)
	q.Enqueue("c", 3)

	assert.True(t, q.Update("c", 0.5))
	assert.False(t, q.Update("missing", 0))

	assert.Equal(t, "c", q.Dequeue())
	assert.Equal(t, "a", q.Dequeue())
	assert.Equal(t, "b", q.Dequeue())
}

func TestPriorityQueueClear(t *testing.T) {
	q := NewPriorityQueue[int32](4)
	for i := range int32(10) {
		q.Enqueue(i, float64(10-i))
	}
	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Contains(3))

	q.Enqueue(3, 7)
	q.Enqueue(4, 1)
	assert.Equal(t, int32(4), q.Dequeue())
	assert.Equal(t, int32(3), q.Dequeue())
}

func TestPriorityQueueManyItems(t *testing.T) {
	q := NewPriorityQueue[int32](0)
	// Priorities in scrambled order.
	for i := range int32(100) {
		q.Enqueue(i, float64((i*37)%100))
	}

	prev := -1.0
	for q.Len() > 0 {
		item := q.Dequeue()
		p := float64((item * 37) % 100)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}
