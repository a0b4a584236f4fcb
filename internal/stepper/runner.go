package stepper

import (
	"context"

	"github.com/san-kum/sortstep/internal/sortstep"
)

// Result is the complete record of a headless run.
type Result struct {
	Algorithm  string
	Initial    sortstep.Array
	Final      sortstep.Array
	Steps      []sortstep.Step
	MaxPending int
	Metrics    map[string]float64
}

// Runner drains a generator synchronously with the same validation the
// scheduler applies, without any pacing.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func NewRunner() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, algorithm string, gen sortstep.Generator, initial sortstep.Array) (*Result, error) {
	if len(initial) < sortstep.MinLength {
		return nil, &sortstep.StartError{Algorithm: algorithm, Err: sortstep.ErrTooFewElements}
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	working := initial.Clone()
	budget := sortstep.StepBudget(len(initial))
	result := &Result{
		Algorithm: algorithm,
		Initial:   initial.Clone(),
		Steps:     make([]sortstep.Step, 0, len(initial)*len(initial)),
		Metrics:   make(map[string]float64),
	}
	pending, _ := gen.(sortstep.PendingRanger)

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if i >= budget {
			return result, &sortstep.InvariantError{Algorithm: algorithm, Step: i + 1, Err: sortstep.ErrNoProgress}
		}

		step := gen.Next(working.Clone())
		if step.Kind == sortstep.KindDone {
			if err := sortstep.VerifyDone(initial, step.Final); err != nil {
				return result, &sortstep.InvariantError{Algorithm: algorithm, Step: i + 1, Kind: step.Kind, Err: err}
			}
		}
		if err := step.Apply(working); err != nil {
			return result, &sortstep.InvariantError{Algorithm: algorithm, Step: i + 1, Kind: step.Kind, Err: err}
		}

		result.Steps = append(result.Steps, step)
		if pending != nil && pending.PendingRanges() > result.MaxPending {
			result.MaxPending = pending.PendingRanges()
		}
		for _, m := range r.metrics {
			m.Observe(step, working)
		}
		for _, obs := range r.observers {
			obs.OnStep(step, working)
		}

		if step.Kind == sortstep.KindDone {
			break
		}
	}

	result.Final = working.Clone()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback drains gen, calling fn after every applied step. Returning
// false from fn abandons the run, like a stop.
func (r *Runner) RunWithCallback(ctx context.Context, algorithm string, gen sortstep.Generator, initial sortstep.Array, fn func(sortstep.Step, sortstep.Array) bool) error {
	stop := &callbackObserver{fn: fn}
	inner := &Runner{metrics: r.metrics, observers: append(append([]Observer{}, r.observers...), stop)}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop.cancel = cancel

	_, err := inner.Run(ctx, algorithm, gen, initial)
	if stop.stopped {
		return nil
	}
	return err
}

type callbackObserver struct {
	fn      func(sortstep.Step, sortstep.Array) bool
	cancel  context.CancelFunc
	stopped bool
}

func (c *callbackObserver) OnStep(step sortstep.Step, a sortstep.Array) {
	if c.stopped {
		return
	}
	if !c.fn(step, a.Clone()) {
		c.stopped = true
		c.cancel()
	}
}
