package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandles(t *testing.T) {
	a := HandleAcquire("a")
	b := HandleAcquire("b")
	require.NotZero(t, a)
	require.NotEqual(t, a, b)

	v, err := HandleLookup(b)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	require.NoError(t, HandleRelease(a))
	_, err = HandleLookup(a)
	assert.ErrorIs(t, err, ErrHandleNotFound)
	assert.ErrorIs(t, HandleRelease(a), ErrHandleNotFound)

	c := HandleAcquire("c")
	assert.Equal(t, a, c, "released slots are reused")

	_, err = HandleLookup(0)
	assert.ErrorIs(t, err, ErrHandleNotFound)

	require.NoError(t, HandleRelease(b))
	require.NoError(t, HandleRelease(c))
}

func TestMetrics(t *testing.T) {
	MetricsReset()
	defer MetricsReset()

	MetricsRecordImport(10*time.Millisecond, false)
	MetricsRecordImport(30*time.Millisecond, true)

	s := MetricsSnapshot()
	assert.Equal(t, uint64(2), s.Imports)
	assert.Equal(t, uint64(1), s.Failures)
	assert.Equal(t, 30*time.Millisecond, s.Last)
	assert.Equal(t, 20*time.Millisecond, MetricsAverageImportTime())

	MetricsReset()
	for i := 0; i < int(AVG_COUNT); i++ {
		MetricsRecordImport(time.Millisecond, false)
	}
	assert.Equal(t, time.Millisecond, MetricsAverageImportTime())
}

func TestParseLogLevel(t *testing.T) {
	l, err := ParseLogLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, l)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestLogOutput(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogLevel(LogLevelWarn)
	defer SetLogLevel(LogLevelInfo)

	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)
	LogAt(LogLevelError, "forwarded line")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "forwarded line")
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(2 * time.Millisecond)
	c.Stop()
	elapsed := c.Elapsed()
	assert.GreaterOrEqual(t, elapsed, 2*time.Millisecond)

	c.Update()
	assert.Equal(t, elapsed, c.Elapsed(), "stopped clocks do not advance")
}
