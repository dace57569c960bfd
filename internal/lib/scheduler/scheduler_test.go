package scheduler

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleReplacesPending(t *testing.T) {
	s := New(slog.Default())
	var ran atomic.Value
	done := make(chan struct{}, 3)
	for _, q := range []string{"in", "ince", "inception"} {
		q := q
		s.Schedule("search", 30*time.Millisecond, func() {
			ran.Store(q)
			done <- struct{}{}
		})
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	assert.Equal(t, "inception", ran.Load())
	select {
	case <-done:
		t.Fatal("superseded task ran")
	case <-time.After(80 * time.Millisecond):
	}
	assert.False(t, s.Pending("search"))
}

func TestCancel(t *testing.T) {
	s := New(slog.Default())
	var calls atomic.Int32
	s.Schedule("search", 20*time.Millisecond, func() { calls.Add(1) })
	assert.True(t, s.Pending("search"))
	assert.True(t, s.Cancel("search"))
	assert.False(t, s.Cancel("search"))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestKeysAreIndependent(t *testing.T) {
	s := New(slog.Default())
	var calls atomic.Int32
	s.Schedule("a", 10*time.Millisecond, func() { calls.Add(1) })
	s.Schedule("b", 10*time.Millisecond, func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestStop(t *testing.T) {
	s := New(slog.Default())
	var calls atomic.Int32
	s.Schedule("search", 20*time.Millisecond, func() { calls.Add(1) })
	s.Stop()
	assert.False(t, s.Schedule("search", time.Millisecond, func() { calls.Add(1) }))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestPanickingTaskIsRecovered(t *testing.T) {
	s := New(slog.Default())
	var calls atomic.Int32
	s.Schedule("boom", time.Millisecond, func() { panic("boom") })
	s.Schedule("ok", 5*time.Millisecond, func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}
