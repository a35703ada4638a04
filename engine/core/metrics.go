package core

import (
	"sync"
	"time"
)

const AVG_COUNT uint8 = 30

type MetricsState struct {
	AVGCounter uint8
	MStimes    [AVG_COUNT]float64
	MSavg      float64
	Imports    uint64
	Failures   uint64
	Last       time.Duration
}

var metricsMutex sync.Mutex
var metricsState = &MetricsState{}

// MetricsRecordImport stores the duration of a finished import. The average
// is refreshed every AVG_COUNT samples.
func MetricsRecordImport(elapsed time.Duration, failed bool) {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	ms := float64(elapsed) / float64(time.Millisecond)
	metricsState.MStimes[metricsState.AVGCounter] = ms
	metricsState.Last = elapsed
	metricsState.Imports++
	if failed {
		metricsState.Failures++
	}

	// Until the window is full, average over what we have.
	n := uint64(AVG_COUNT)
	if metricsState.Imports < n {
		n = metricsState.Imports
	}
	if metricsState.AVGCounter == AVG_COUNT-1 || metricsState.Imports < uint64(AVG_COUNT) {
		sum := 0.0
		for i := uint64(0); i < n; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(n)
	}
	metricsState.AVGCounter++
	metricsState.AVGCounter %= AVG_COUNT
}

// MetricsSnapshot returns a copy of the current import metrics.
func MetricsSnapshot() MetricsState {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	return *metricsState
}

func MetricsAverageImportTime() time.Duration {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	return time.Duration(metricsState.MSavg * float64(time.Millisecond))
}

func MetricsReset() {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	metricsState = &MetricsState{}
}
