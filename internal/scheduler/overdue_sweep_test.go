package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	mu      sync.Mutex
	calls   int
	flipped int64
	err     error
}

func (m *fakeMarker) MarkOverdue(now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.flipped, m.err
}

func (m *fakeMarker) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestOverdueSweepScheduler_StartStop(t *testing.T) {
	s := NewOverdueSweepScheduler(&fakeMarker{}, "0 1 * * *")

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestOverdueSweepScheduler_StartTwiceIsNoop(t *testing.T) {
	s := NewOverdueSweepScheduler(&fakeMarker{}, "0 1 * * *")

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
}

func TestOverdueSweepScheduler_InvalidSchedule(t *testing.T) {
	s := NewOverdueSweepScheduler(&fakeMarker{}, "not a schedule")

	err := s.Start(context.Background())

	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestOverdueSweepScheduler_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := NewOverdueSweepScheduler(&fakeMarker{}, "0 1 * * *")
	require.NoError(t, s.Start(ctx))
	require.True(t, s.IsRunning())

	cancel()

	assert.Eventually(t, func() bool {
		return !s.IsRunning()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOverdueSweepScheduler_RunSweep(t *testing.T) {
	t.Run("invokes the marker", func(t *testing.T) {
		marker := &fakeMarker{flipped: 3}
		s := NewOverdueSweepScheduler(marker, "0 1 * * *")

		s.runSweep()

		assert.Equal(t, 1, marker.callCount())
	})

	t.Run("a failing sweep does not panic", func(t *testing.T) {
		marker := &fakeMarker{err: errors.New("database is locked")}
		s := NewOverdueSweepScheduler(marker, "0 1 * * *")

		assert.NotPanics(t, func() {
			s.runSweep()
		})
		assert.Equal(t, 1, marker.callCount())
	})
}
