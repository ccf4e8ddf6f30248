package scheduler

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/forgecs/ecs/internal/workerpool"
	"github.com/forgecs/ecs/resource"
)

// Callback is a system entry point. It receives only the resource container,
// which it uses to resolve the entity store and any other long-lived
// service it needs.
type Callback func(res *resource.Container) error

type entry struct {
	origin      string
	fn          Callback
	ignorePause bool
}

type pool struct {
	mu         sync.Mutex
	entries    []entry
	ignoreOnce bool
}

// Phase holds a sorted mapping from integer pool-index to a pool. Pool
// indices 0-10 and 90-100 are reserved by convention for framework-owned
// bootstrap and teardown systems; user code conventionally uses 50.
type Phase struct {
	name string

	mu    sync.RWMutex
	pools map[int]*pool
}

func newPhase(name string) *Phase {
	return &Phase{name: name, pools: make(map[int]*pool)}
}

func (p *Phase) poolAt(index int) *pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl, ok := p.pools[index]
	if !ok {
		pl = &pool{}
		p.pools[index] = pl
	}
	return pl
}

func (p *Phase) add(index int, origin string, fn Callback, ignorePause bool) {
	pl := p.poolAt(index)
	pl.mu.Lock()
	pl.entries = append(pl.entries, entry{origin: origin, fn: fn, ignorePause: ignorePause})
	pl.mu.Unlock()
}

// skipOnce marks pool index to be skipped entirely on its next run; the
// pool's ignoreOnce flag clears itself during that run.
func (p *Phase) skipOnce(index int) {
	pl := p.poolAt(index)
	pl.mu.Lock()
	pl.ignoreOnce = true
	pl.mu.Unlock()
}

func (p *Phase) unloadOrigin(origin string) {
	p.mu.RLock()
	pools := make([]*pool, 0, len(p.pools))
	for _, pl := range p.pools {
		pools = append(pools, pl)
	}
	p.mu.RUnlock()

	for _, pl := range pools {
		pl.mu.Lock()
		kept := pl.entries[:0]
		for _, e := range pl.entries {
			if e.origin != origin {
				kept = append(kept, e)
			}
		}
		pl.entries = kept
		pl.mu.Unlock()
	}
}

// sortedPools returns the phase's pools ordered by ascending key, snapshot
// taken under the phase's own lock so a concurrent AddSystem on an unrelated
// pool index cannot be observed mid-run.
func (p *Phase) sortedPools() ([]int, []*pool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]int, 0, len(p.pools))
	for k := range p.pools {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	pools := make([]*pool, len(keys))
	for i, k := range keys {
		pools[i] = p.pools[k]
	}
	return keys, pools
}

// run executes every pool in ascending key order, running each pool's
// callbacks in parallel and waiting for all of them before advancing. When
// paused is true, entries with ignorePause == false are skipped entirely —
// per §4.6 this only ever applies to the frame phase. A failing callback does
// not stop later pools; the returned error joins the first failure of each
// pool that had one.
func (p *Phase) run(res *resource.Container, workers *workerpool.Pool, metrics *metrics, log zerolog.Logger, paused bool) error {
	keys, pools := p.sortedPools()

	var errs []error
	for idx, pl := range pools {
		poolIndex := keys[idx]
		pl.mu.Lock()
		if pl.ignoreOnce {
			pl.ignoreOnce = false
			pl.mu.Unlock()
			continue
		}
		entries := append([]entry(nil), pl.entries...)
		pl.mu.Unlock()

		if err := p.runPool(res, workers, metrics, log, poolIndex, entries, paused); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Phase) runPool(res *resource.Container, workers *workerpool.Pool, m *metrics, log zerolog.Logger, poolIndex int, entries []entry, paused bool) error {
	started := time.Now()
	handles := make([]*workerpool.Handle, 0, len(entries))
	origins := make([]string, 0, len(entries))

	for _, e := range entries {
		if paused && !e.ignorePause {
			continue
		}
		fn := e.fn
		handles = append(handles, workers.Submit(func() error { return fn(res) }))
		origins = append(origins, e.origin)
	}

	var firstErr error
	for i, h := range handles {
		if err := h.Wait(); err != nil {
			log.Error().Str("phase", p.name).Int("pool", poolIndex).Str("origin", origins[i]).Err(err).Msg("scheduler callback failed")
			if m != nil {
				m.callbackErrors.WithLabelValues(p.name, origins[i]).Inc()
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if m != nil {
		m.poolDuration.WithLabelValues(p.name, strconv.Itoa(poolIndex)).Observe(time.Since(started).Seconds())
	}
	return firstErr
}
