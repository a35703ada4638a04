package containers

import "errors"

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
)

// RingQueue is a fixed size FIFO. It is not safe for concurrent use.
type RingQueue[T any] struct {
	data       []T
	size       int
	readIndex  int
	writeIndex int
	count      int
}

// Create a new RingQueue holding at most size elements.
func NewRingQueue[T any](size int) *RingQueue[T] {
	if size < 1 {
		size = 1
	}
	return &RingQueue[T]{
		data: make([]T, size),
		size: size,
	}
}

// Enqueue adds an element to the queue
func (rq *RingQueue[T]) Enqueue(value T) error {
	if rq.IsFull() {
		return ErrQueueFull
	}

	rq.data[rq.writeIndex] = value
	rq.writeIndex = (rq.writeIndex + 1) % rq.size
	rq.count++
	return nil
}

// Push adds an element, dropping the oldest one when the queue is full.
func (rq *RingQueue[T]) Push(value T) {
	if rq.IsFull() {
		rq.Dequeue()
	}
	rq.Enqueue(value)
}

// Dequeue removes and returns the front element in the queue
func (rq *RingQueue[T]) Dequeue() (T, error) {
	var zero T
	if rq.IsEmpty() {
		return zero, ErrQueueEmpty
	}

	value := rq.data[rq.readIndex]
	rq.data[rq.readIndex] = zero
	rq.readIndex = (rq.readIndex + 1) % rq.size
	rq.count--
	return value, nil
}

// Peek returns the front element without removing it
func (rq *RingQueue[T]) Peek() (T, error) {
	if rq.IsEmpty() {
		var zero T
		return zero, ErrQueueEmpty
	}
	return rq.data[rq.readIndex], nil
}

// Items copies the queued elements, oldest first.
func (rq *RingQueue[T]) Items() []T {
	out := make([]T, rq.count)
	for i := 0; i < rq.count; i++ {
		out[i] = rq.data[(rq.readIndex+i)%rq.size]
	}
	return out
}

func (rq *RingQueue[T]) Len() int {
	return rq.count
}

// IsEmpty checks if the queue is empty
func (rq *RingQueue[T]) IsEmpty() bool {
	return rq.count == 0
}

// IsFull checks if the queue is full
func (rq *RingQueue[T]) IsFull() bool {
	return rq.count == rq.size
}
