package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemRunsCallbacks(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, js.Workers())

	var (
		mu        sync.Mutex
		results   []int
		failures  int
		completed int32
	)
	boom := errors.New("boom")
	for i := 0; i < 20; i++ {
		i := i
		require.NoError(t, js.Submit(JobTask{
			Name: "square",
			Run: func() (interface{}, error) {
				if i%5 == 0 {
					return nil, boom
				}
				return i * i, nil
			},
			OnComplete: func(result interface{}) {
				mu.Lock()
				results = append(results, result.(int))
				mu.Unlock()
			},
			OnFailure: func(err error) {
				assert.ErrorIs(t, err, boom)
				mu.Lock()
				failures++
				mu.Unlock()
			},
			OnCompletionCallback: func() { atomic.AddInt32(&completed, 1) },
		}))
	}
	require.NoError(t, js.Shutdown())

	assert.Len(t, results, 16)
	assert.Equal(t, 4, failures)
	assert.Equal(t, int32(20), atomic.LoadInt32(&completed))
}

func TestJobSystemShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)

	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())
	assert.ErrorIs(t, js.Submit(JobTask{Name: "late"}), ErrJobSystemShutdown)
}
