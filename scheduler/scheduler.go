// Package scheduler implements the system scheduler: three independent
// phases (begin, frame, end), each an ordered set of integer-keyed pools run
// sequentially, with a pool's own callbacks run in parallel against the
// resource container.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	ecs "github.com/forgecs/ecs"
	"github.com/forgecs/ecs/internal/workerpool"
	"github.com/forgecs/ecs/resource"
)

// Scheduler drives the begin/frame/end phases against a shared resource
// container. Workers bounds how many callbacks within one pool run
// concurrently; zero runs every pool synchronously on the calling goroutine.
type Scheduler struct {
	resources *resource.Container
	workers   *workerpool.Pool
	metrics   *metrics
	logger    zerolog.Logger

	begin *Phase
	frame *Phase
	end   *Phase

	runMu   sync.Mutex
	running bool
	paused  atomic.Bool
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithWorkers sets the fixed pool size used to parallelize callbacks within
// one pool. The default, zero, runs them sequentially on the caller's
// goroutine (still logically "in parallel" per the scheduling model's
// cooperative guarantees, just without extra goroutines).
func WithWorkers(n int) Option {
	return func(s *Scheduler) { s.workers = workerpool.New(n) }
}

// WithMetricsRegistry registers the scheduler's Prometheus collectors
// against reg. Omit to run without metrics registration.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(s *Scheduler) { s.metrics = newMetrics(reg) }
}

// WithLogger overrides the scheduler's zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// New constructs a scheduler bound to resources.
func New(resources *resource.Container, opts ...Option) *Scheduler {
	s := &Scheduler{
		resources: resources,
		begin:     newPhase("begin"),
		frame:     newPhase("frame"),
		end:       newPhase("end"),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(nil)
	}
	return s
}

// AddBeginSystem registers a begin-phase callback in poolIndex. Begin is
// unaffected by pause, so it always runs.
func (s *Scheduler) AddBeginSystem(origin string, poolIndex int, fn Callback) {
	s.begin.add(poolIndex, origin, fn, true)
}

// AddEndSystem registers an end-phase callback in poolIndex. End is
// unaffected by pause, so it always runs.
func (s *Scheduler) AddEndSystem(origin string, poolIndex int, fn Callback) {
	s.end.add(poolIndex, origin, fn, true)
}

// AddSystem registers a frame-phase callback in poolIndex. ignorePause
// selects whether this callback still runs while the scheduler is paused.
func (s *Scheduler) AddSystem(origin string, poolIndex int, ignorePause bool, fn Callback) {
	s.frame.add(poolIndex, origin, fn, ignorePause)
}

// SetPause sets the frame-phase pause flag. While paused, frame callbacks
// whose ignorePause is false are skipped; begin and end are unaffected.
func (s *Scheduler) SetPause(paused bool) { s.paused.Store(paused) }

// Paused reports the current pause state.
func (s *Scheduler) Paused() bool { return s.paused.Load() }

// RunBegin drives the begin phase to completion.
func (s *Scheduler) RunBegin() error { return s.runPhase(s.begin, false) }

// Run drives the frame phase to completion, honoring the current pause
// state.
func (s *Scheduler) Run() error { return s.runPhase(s.frame, s.Paused()) }

// RunEnd drives the end phase to completion.
func (s *Scheduler) RunEnd() error { return s.runPhase(s.end, false) }

func (s *Scheduler) runPhase(p *Phase, paused bool) error {
	s.runMu.Lock()
	s.running = true
	s.runMu.Unlock()
	defer func() {
		s.runMu.Lock()
		s.running = false
		s.runMu.Unlock()
	}()

	started := time.Now()
	err := p.run(s.resources, s.workers, s.metrics, s.logger, paused)
	s.metrics.phaseDuration.WithLabelValues(p.name).Observe(time.Since(started).Seconds())
	return err
}

// UnloadOrigin removes, from every pool of every phase, every entry whose
// origin equals origin. Safe only when no phase is currently executing; it
// returns ecs.ErrPhaseRunning otherwise, matching the "hot unload" contract
// that backs reloading a plugin's systems without tearing down the world.
func (s *Scheduler) UnloadOrigin(origin string) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return ecs.ErrPhaseRunning
	}
	s.begin.unloadOrigin(origin)
	s.frame.unloadOrigin(origin)
	s.end.unloadOrigin(origin)
	return nil
}

// SkipNextFrame arms the given frame pool's ignore-once flag: its next Run
// will skip that pool entirely, then automatically re-arm for subsequent
// runs.
func (s *Scheduler) SkipNextFrame(poolIndex int) {
	s.frame.skipOnce(poolIndex)
}

// Close releases the scheduler's worker pool, if any.
func (s *Scheduler) Close() {
	s.workers.Close()
}
