package stepper

import (
	"time"

	"github.com/san-kum/sortstep/internal/sortstep"
)

// Frame is what the visualization sink receives after every applied step
// and at session start, stop, skip and reset.
type Frame struct {
	Array     sortstep.Array
	Highlight []int
	Narration string
	Seq       int
	Step      *sortstep.Step
	Running   bool
	Fault     error
}

// Sink renders frames. Render is called with the scheduler lock held and
// must not call back into the scheduler.
type Sink interface {
	Render(f Frame)
}

// Notifier shows a transient, self-expiring message.
type Notifier interface {
	Notify(msg string)
}

// Controls enables start-class or stop-class controls.
type Controls interface {
	SetRunning(running bool)
}

// Observer sees every applied step.
type Observer interface {
	OnStep(step sortstep.Step, a sortstep.Array)
}

// Metric accumulates a statistic over one run.
type Metric interface {
	Name() string
	Observe(step sortstep.Step, a sortstep.Array)
	Value() float64
	Reset()
}

// Delays is the inter-step pacing: element-level operations use Element,
// divide/merge/partition boundary markers use Structural.
type Delays struct {
	Element    time.Duration
	Structural time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Element:    600 * time.Millisecond,
		Structural: 800 * time.Millisecond,
	}
}

func (d Delays) For(k sortstep.Kind) time.Duration {
	if k.Structural() {
		return d.Structural
	}
	return d.Element
}

type discard struct{}

func (discard) Render(Frame)    {}
func (discard) Notify(string)   {}
func (discard) SetRunning(bool) {}

// Discard ignores every frame, notification and control change.
var Discard = discard{}
