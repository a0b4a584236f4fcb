package metrics

import (
	"github.com/san-kum/sortstep/internal/sortstep"
)

// Inversions tracks how many out-of-order pairs the array still holds after
// each step. Its value is the count after the last observed step.
type Inversions struct {
	name    string
	current int
	peak    int
	samples int
}

func NewInversions() *Inversions {
	return &Inversions{name: "inversions"}
}

func (m *Inversions) Name() string {
	return m.name
}

func (m *Inversions) Observe(step sortstep.Step, a sortstep.Array) {
	m.current = CountInversions(a)
	if m.current > m.peak {
		m.peak = m.current
	}
	m.samples++
}

func (m *Inversions) Value() float64 {
	return float64(m.current)
}

// Peak is the largest inversion count seen during the run.
func (m *Inversions) Peak() int {
	return m.peak
}

func (m *Inversions) Reset() {
	m.current = 0
	m.peak = 0
	m.samples = 0
}

// CountInversions returns the number of pairs i<j with a[i] > a[j].
func CountInversions(a sortstep.Array) int {
	n := 0
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i] > a[j] {
				n++
			}
		}
	}
	return n
}

// PendingDepth records the deepest pending-range stack of a divide and
// conquer generator. Generators without a stack report zero.
type PendingDepth struct {
	name string
	gen  sortstep.Generator
	max  int
}

func NewPendingDepth(gen sortstep.Generator) *PendingDepth {
	return &PendingDepth{name: "pending_depth", gen: gen}
}

func (m *PendingDepth) Name() string { return m.name }

func (m *PendingDepth) Observe(step sortstep.Step, a sortstep.Array) {
	p, ok := m.gen.(sortstep.PendingRanger)
	if !ok {
		return
	}
	m.max = max(m.max, p.PendingRanges())
}

func (m *PendingDepth) Value() float64 {
	return float64(m.max)
}

func (m *PendingDepth) Reset() {
	m.max = 0
}
