package scheduler_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgecs/ecs/resource"
	"github.com/forgecs/ecs/scheduler"
)

func TestBeginFrameEndLifecycle(t *testing.T) {
	res := resource.New(zerolog.Nop())
	s := scheduler.New(res, scheduler.WithWorkers(2))
	defer s.Close()

	var counter int64

	s.AddBeginSystem("core", 0, func(r *resource.Container) error {
		atomic.StoreInt64(&counter, 0)
		return nil
	})
	s.AddSystem("core", 50, false, func(r *resource.Container) error {
		atomic.AddInt64(&counter, 1)
		return nil
	})
	var observed int64
	s.AddEndSystem("core", 100, func(r *resource.Container) error {
		observed = atomic.LoadInt64(&counter)
		return nil
	})

	require.NoError(t, s.RunBegin())
	require.NoError(t, s.Run())
	require.NoError(t, s.Run())
	require.NoError(t, s.Run())
	require.NoError(t, s.RunEnd())

	assert.Equal(t, int64(3), observed)
}

func TestPauseSuppressesNonIgnoringFrameCallbacks(t *testing.T) {
	res := resource.New(zerolog.Nop())
	s := scheduler.New(res)
	defer s.Close()

	var normal, ignoring int64
	s.AddSystem("core", 50, false, func(r *resource.Container) error {
		atomic.AddInt64(&normal, 1)
		return nil
	})
	s.AddSystem("core", 50, true, func(r *resource.Container) error {
		atomic.AddInt64(&ignoring, 1)
		return nil
	})

	s.SetPause(true)
	require.NoError(t, s.Run())
	require.NoError(t, s.Run())

	assert.Equal(t, int64(0), atomic.LoadInt64(&normal))
	assert.Equal(t, int64(2), atomic.LoadInt64(&ignoring))
}

func TestPoolOrderingWithinAPhase(t *testing.T) {
	res := resource.New(zerolog.Nop())
	s := scheduler.New(res, scheduler.WithWorkers(4))
	defer s.Close()

	var mu sync.Mutex
	var order []int
	s.AddSystem("core", 20, false, func(r *resource.Container) error {
		mu.Lock()
		order = append(order, 20)
		mu.Unlock()
		return nil
	})
	s.AddSystem("core", 10, false, func(r *resource.Container) error {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		order = append(order, 10)
		mu.Unlock()
		return nil
	})

	require.NoError(t, s.Run())
	assert.Equal(t, []int{10, 20}, order)
}

func TestPoolParallelismFasterThanSum(t *testing.T) {
	res := resource.New(zerolog.Nop())
	s := scheduler.New(res, scheduler.WithWorkers(2))
	defer s.Close()

	const sleep = 40 * time.Millisecond
	s.AddSystem("core", 50, false, func(r *resource.Container) error {
		time.Sleep(sleep)
		return nil
	})
	s.AddSystem("core", 50, false, func(r *resource.Container) error {
		time.Sleep(sleep)
		return nil
	})

	started := time.Now()
	require.NoError(t, s.Run())
	elapsed := time.Since(started)
	assert.Less(t, elapsed, 2*sleep)
}

func TestUnloadOriginRemovesOnlyThatOriginsEntries(t *testing.T) {
	res := resource.New(zerolog.Nop())
	s := scheduler.New(res)
	defer s.Close()

	var pluginRan, coreRan bool
	s.AddSystem("plugin-a", 50, false, func(r *resource.Container) error { pluginRan = true; return nil })
	s.AddSystem("core", 50, false, func(r *resource.Container) error { coreRan = true; return nil })

	require.NoError(t, s.UnloadOrigin("plugin-a"))
	require.NoError(t, s.Run())

	assert.False(t, pluginRan)
	assert.True(t, coreRan)
}

func TestSkipNextFrameSkipsExactlyOnce(t *testing.T) {
	res := resource.New(zerolog.Nop())
	s := scheduler.New(res)
	defer s.Close()

	var runs int
	s.AddSystem("core", 50, false, func(r *resource.Container) error { runs++; return nil })

	s.SkipNextFrame(50)
	require.NoError(t, s.Run())
	require.NoError(t, s.Run())

	assert.Equal(t, 1, runs)
}
