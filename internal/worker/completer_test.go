package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	calls     int64
	completed int64
	err       error
}

func (r *fakeSessionRepo) MarkCompletedBefore(_ context.Context, _ time.Time) (int64, error) {
	atomic.AddInt64(&r.calls, 1)
	if r.err != nil {
		return 0, r.err
	}
	return r.completed, nil
}

func (r *fakeSessionRepo) Calls() int64 {
	return atomic.LoadInt64(&r.calls)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestCompleter_SweepsImmediatelyOnStart(t *testing.T) {
	repo := &fakeSessionRepo{completed: 3}
	c := NewCompleter(repo, noopLogger{}, time.Hour)

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return repo.Calls() == 1
	}, time.Second, 10*time.Millisecond)

	c.Stop()
}

func TestCompleter_SweepsPeriodically(t *testing.T) {
	repo := &fakeSessionRepo{}
	c := NewCompleter(repo, noopLogger{}, 20*time.Millisecond)

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return repo.Calls() >= 3
	}, time.Second, 10*time.Millisecond)

	c.Stop()
}

func TestCompleter_StopHaltsSweeps(t *testing.T) {
	repo := &fakeSessionRepo{}
	c := NewCompleter(repo, noopLogger{}, 20*time.Millisecond)

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return repo.Calls() >= 1
	}, time.Second, 10*time.Millisecond)

	c.Stop()

	after := repo.Calls()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, repo.Calls())
}

func TestCompleter_ContinuesAfterRepositoryError(t *testing.T) {
	repo := &fakeSessionRepo{err: errors.New("db down")}
	c := NewCompleter(repo, noopLogger{}, 20*time.Millisecond)

	c.Start(context.Background())

	require.Eventually(t, func() bool {
		return repo.Calls() >= 2
	}, time.Second, 10*time.Millisecond)

	c.Stop()
}
