package stepper

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

type Options struct {
	Clock    Clock
	Delays   Delays
	Notifier Notifier
	Controls Controls
	Narrator sortstep.Narrator
	Logger   *slog.Logger
}

// Run is the live state of one animation session.
type Run struct {
	ID        string
	Algorithm string
	Started   time.Time

	gen     sortstep.Generator
	initial sortstep.Array
	working sortstep.Array
	steps   int
	budget  int
}

// Scheduler drives a generator one step per tick. At most one tick is
// outstanding; every control operation cancels it before doing anything
// else, and a fired tick whose epoch is stale does nothing.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	delays   Delays
	sink     Sink
	notifier Notifier
	controls Controls
	narr     sortstep.Narrator
	logger   *slog.Logger

	list    sortstep.Array
	run     *Run
	timer   Timer
	epoch   uint64
	seq     int
	stopped bool
	fault   error
}

func New(sink Sink, opts Options) *Scheduler {
	if sink == nil {
		sink = Discard
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Delays == (Delays{}) {
		opts.Delays = DefaultDelays()
	}
	if opts.Notifier == nil {
		opts.Notifier = Discard
	}
	if opts.Controls == nil {
		opts.Controls = Discard
	}
	if opts.Narrator == nil {
		opts.Narrator = narrate.English()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		clock:    opts.Clock,
		delays:   opts.Delays,
		sink:     sink,
		notifier: opts.Notifier,
		controls: opts.Controls,
		narr:     opts.Narrator,
		logger:   opts.Logger,
		list:     sortstep.Array{},
	}
}

// List returns a copy of the committed list.
func (s *Scheduler) List() sortstep.Array {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Clone()
}

// Working returns a copy of the array of the active run, or nil.
func (s *Scheduler) Working() sortstep.Array {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return nil
	}
	return s.run.working.Clone()
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run != nil
}

func (s *Scheduler) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Steps returns the step counter of the current or last run.
func (s *Scheduler) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Err returns the invariant violation that ended the last run, if any.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}

// Append adds one element to the committed list.
func (s *Scheduler) Append(v int, narration string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil {
		return sortstep.ErrBusy
	}
	if len(s.list) >= sortstep.MaxLength {
		return sortstep.ErrListFull
	}
	s.list = append(s.list, v)
	s.seq = 0
	s.sink.Render(Frame{Array: s.list.Clone(), Narration: narration})
	return nil
}

// Replace swaps in a new committed list.
func (s *Scheduler) Replace(list sortstep.Array, narration string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil {
		return sortstep.ErrBusy
	}
	if len(list) > sortstep.MaxLength {
		return sortstep.ErrListFull
	}
	s.list = list.Clone()
	s.seq = 0
	s.sink.Render(Frame{Array: s.list.Clone(), Narration: narration})
	return nil
}

// Start begins animating gen over a copy of the committed list.
func (s *Scheduler) Start(algorithm string, gen sortstep.Generator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run != nil {
		return &sortstep.StartError{Algorithm: algorithm, Err: sortstep.ErrAlreadyRunning}
	}
	if len(s.list) < sortstep.MinLength {
		return &sortstep.StartError{Algorithm: algorithm, Err: sortstep.ErrTooFewElements}
	}

	s.cancelLocked()
	s.stopped = false
	s.fault = nil
	s.seq = 0
	s.run = &Run{
		ID:        uuid.NewString(),
		Algorithm: algorithm,
		Started:   time.Now(),
		gen:       gen,
		initial:   s.list.Clone(),
		working:   s.list.Clone(),
		budget:    sortstep.StepBudget(len(s.list)),
	}

	s.logger.Info("sort started", "run", s.run.ID, "algorithm", algorithm, "n", len(s.list))
	s.controls.SetRunning(true)
	s.sink.Render(Frame{
		Array:     s.run.working.Clone(),
		Narration: s.narr.Sprintf(narrate.Started, algorithm),
		Running:   true,
	})
	s.scheduleLocked(0)
	return nil
}

// Stop abandons the active run, keeping the committed list. It is a no-op
// when nothing is running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return
	}
	s.stopped = true
	s.cancelLocked()
	s.haltLocked()
}

// Skip resolves the active run immediately by sorting the committed list
// directly, bypassing the generator. It is a no-op when nothing is running.
func (s *Scheduler) Skip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return
	}
	s.cancelLocked()
	s.stopped = true
	slices.Sort(s.list)
	s.seq++

	s.logger.Info("sort skipped", "run", s.run.ID, "algorithm", s.run.Algorithm, "steps", s.run.steps)
	s.sink.Render(Frame{Array: s.list.Clone(), Narration: s.narr.Sprintf(narrate.Skipped), Seq: s.seq})
	s.notifier.Notify(s.narr.Sprintf(narrate.SortedNoAnim))
	s.endLocked()
}

// Reset cancels any run and clears the list and the step counter.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	if s.run != nil {
		s.logger.Info("sort reset", "run", s.run.ID, "algorithm", s.run.Algorithm, "steps", s.run.steps)
	}
	s.run = nil
	s.stopped = false
	s.fault = nil
	s.list = sortstep.Array{}
	s.seq = 0
	s.controls.SetRunning(false)
	s.sink.Render(Frame{Array: sortstep.Array{}})
}

func (s *Scheduler) scheduleLocked(d time.Duration) {
	s.epoch++
	epoch := s.epoch
	s.timer = s.clock.AfterFunc(d, func() { s.tick(epoch) })
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.epoch++
}

func (s *Scheduler) tick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.run == nil {
		return
	}
	s.timer = nil
	if s.stopped {
		s.haltLocked()
		return
	}

	run := s.run
	if run.steps >= run.budget {
		s.faultLocked(&sortstep.InvariantError{Algorithm: run.Algorithm, Step: run.steps + 1, Err: sortstep.ErrNoProgress})
		return
	}

	step := run.gen.Next(run.working.Clone())
	if step.Kind == sortstep.KindDone {
		if err := sortstep.VerifyDone(run.initial, step.Final); err != nil {
			s.faultLocked(&sortstep.InvariantError{Algorithm: run.Algorithm, Step: run.steps + 1, Kind: step.Kind, Err: err})
			return
		}
	}
	if err := step.Apply(run.working); err != nil {
		s.faultLocked(&sortstep.InvariantError{Algorithm: run.Algorithm, Step: run.steps + 1, Kind: step.Kind, Err: err})
		return
	}
	run.steps++
	s.seq++

	if step.Kind == sortstep.KindDone {
		s.completeLocked(step)
		return
	}

	s.sink.Render(Frame{
		Array:     run.working.Clone(),
		Highlight: step.Highlight,
		Narration: step.Narration,
		Seq:       s.seq,
		Step:      &step,
		Running:   true,
	})
	s.scheduleLocked(s.delays.For(step.Kind))
}

func (s *Scheduler) completeLocked(step sortstep.Step) {
	s.list = step.Final.Clone()
	s.logger.Info("sort finished", "run", s.run.ID, "algorithm", s.run.Algorithm,
		"steps", s.run.steps, "elapsed", time.Since(s.run.Started))
	s.sink.Render(Frame{Array: s.list.Clone(), Narration: step.Narration, Seq: s.seq, Step: &step})
	s.notifier.Notify(s.narr.Sprintf(narrate.Completed))
	s.endLocked()
}

// haltLocked is the stopped path: the working copy is discarded and the
// committed list is shown again.
func (s *Scheduler) haltLocked() {
	s.logger.Info("sort stopped", "run", s.run.ID, "algorithm", s.run.Algorithm, "steps", s.run.steps)
	s.sink.Render(Frame{Array: s.list.Clone(), Narration: s.narr.Sprintf(narrate.Stopped), Seq: s.seq})
	s.endLocked()
}

func (s *Scheduler) faultLocked(err error) {
	s.fault = err
	s.logger.Error("generator invariant violated", "run", s.run.ID, "algorithm", s.run.Algorithm, "error", err)
	s.sink.Render(Frame{
		Array:     s.list.Clone(),
		Narration: s.narr.Sprintf(narrate.Fault, err),
		Seq:       s.seq,
		Fault:     fmt.Errorf("stepper: %w", err),
	})
	s.endLocked()
}

func (s *Scheduler) endLocked() {
	s.cancelLocked()
	s.run = nil
	s.controls.SetRunning(false)
}
