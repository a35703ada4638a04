package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	assert.True(t, rq.IsEmpty())

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(4), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	for _, want := range []int{1, 2, 3} {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = rq.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueuePushOverwrites(t *testing.T) {
	rq := NewRingQueue[string](2)
	rq.Push("a")
	rq.Push("b")
	rq.Push("c")

	assert.Equal(t, 2, rq.Len())
	assert.Equal(t, []string{"b", "c"}, rq.Items())
}

func TestRingQueueMinimumSize(t *testing.T) {
	rq := NewRingQueue[int](0)
	rq.Push(7)
	assert.Equal(t, []int{7}, rq.Items())
}
