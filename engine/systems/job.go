package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/anima/engine/core"
)

/**
 * @brief A unit of work for the job system. Run executes on a worker;
 * exactly one of OnComplete and OnFailure is then called with its result.
 */
type JobTask struct {
	/** @brief Name used in log lines. */
	Name string
	/** @brief The work itself. */
	Run func() (interface{}, error)
	/** @brief Called with the result when Run succeeds. */
	OnComplete func(result interface{})
	/** @brief Called with the error when Run fails. */
	OnFailure func(err error)
	/** @brief Called after OnComplete or OnFailure, whatever the outcome. */
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu       sync.RWMutex
	shutdown bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemShutdown = errors.New("job system already shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	if job.OnCompletionCallback != nil {
		defer job.OnCompletionCallback()
	}
	if job.Run == nil {
		return
	}

	result, err := job.Run()
	if err != nil {
		core.LogError("job %s failed: %s", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete(result)
	}
}

/**
 * @brief Shuts the job system down, waiting for queued jobs to finish.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.shutdown {
		js.mu.Unlock()
		return nil
	}
	js.shutdown = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

// Workers returns the size of the pool.
func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()

	if js.shutdown {
		return ErrJobSystemShutdown
	}
	js.jobQueue <- jt
	return nil
}
