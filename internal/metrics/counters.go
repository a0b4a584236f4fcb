package metrics

import (
	"slices"

	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/stepper"
)

// Counter counts applied steps of the given kinds. With no kinds it counts
// every step.
type Counter struct {
	name  string
	kinds []sortstep.Kind
	count int
}

func NewCounter(name string, kinds ...sortstep.Kind) *Counter {
	return &Counter{name: name, kinds: kinds}
}

func NewComparisons() *Counter { return NewCounter("comparisons", sortstep.KindCompare) }
func NewSwaps() *Counter       { return NewCounter("swaps", sortstep.KindSwap) }
func NewWrites() *Counter      { return NewCounter("writes", sortstep.KindOverwrite) }
func NewTotal() *Counter       { return NewCounter("steps") }

func NewMarkers() *Counter {
	return NewCounter("markers", sortstep.KindDivide, sortstep.KindMerge, sortstep.KindPivot, sortstep.KindPartition)
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(step sortstep.Step, a sortstep.Array) {
	if len(c.kinds) == 0 || slices.Contains(c.kinds, step.Kind) {
		c.count++
	}
}

func (c *Counter) Value() float64 {
	return float64(c.count)
}

func (c *Counter) Reset() {
	c.count = 0
}

// Default returns the counters reported by run and bench.
func Default() []stepper.Metric {
	return []stepper.Metric{
		NewComparisons(),
		NewSwaps(),
		NewWrites(),
		NewMarkers(),
		NewTotal(),
	}
}
