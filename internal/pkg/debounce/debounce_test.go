package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/torneo-cremesi/sheet-api/internal/pkg/debounce"
)

func TestTriggerCoalescesBursts(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load(), "last trigger wins")
}

func TestZeroDelayRunsSynchronously(t *testing.T) {
	d := debounce.New(0)
	ran := false
	d.Trigger(func() { ran = true })
	assert.True(t, ran)
}

func TestFlushRunsPendingImmediately(t *testing.T) {
	d := debounce.New(time.Hour)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Flush()
	assert.Equal(t, int32(1), calls.Load())

	// nothing left to run
	d.Flush()
	assert.Equal(t, int32(1), calls.Load())
}

func TestStopDiscardsPending(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
