package workerpool_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgecs/ecs/internal/workerpool"
)

func TestSubmitRunsConcurrently(t *testing.T) {
	p := workerpool.New(4)
	defer p.Close()

	var active int32
	var maxActive int32
	handles := make([]*workerpool.Handle, 4)
	for i := range handles {
		handles[i] = p.Submit(func() error {
			n := atomic.AddInt32(&active, 1)
			for {
				cur := atomic.LoadInt32(&maxActive)
				if n <= cur || atomic.CompareAndSwapInt32(&maxActive, cur, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil
		})
	}
	for _, h := range handles {
		require.NoError(t, h.Wait())
	}
	assert.Greater(t, atomic.LoadInt32(&maxActive), int32(1))
}

func TestSubmitPropagatesError(t *testing.T) {
	p := workerpool.New(2)
	defer p.Close()

	sentinel := errors.New("boom")
	h := p.Submit(func() error { return sentinel })
	assert.Equal(t, sentinel, h.Wait())
}

func TestNilPoolRunsSynchronously(t *testing.T) {
	var p *workerpool.Pool
	ran := false
	h := p.Submit(func() error { ran = true; return nil })
	require.NoError(t, h.Wait())
	assert.True(t, ran)
}

func TestSubmitAfterCloseFails(t *testing.T) {
	p := workerpool.New(1)
	p.Close()
	h := p.Submit(func() error { return nil })
	assert.ErrorIs(t, h.Wait(), workerpool.ErrClosed)
}
