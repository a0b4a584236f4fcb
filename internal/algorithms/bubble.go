package algorithms

import (
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

// Bubble compares adjacent pairs; a swap, when needed, is its own step
// after the comparison.
type Bubble struct {
	narr     sortstep.Narrator
	i, j     int
	compared bool
	done     bool
}

func NewBubble(narr sortstep.Narrator) *Bubble {
	return &Bubble{narr: narr}
}

func (b *Bubble) Next(a sortstep.Array) sortstep.Step {
	n := len(a)
	for !b.done && b.i < n-1 {
		if b.j >= n-b.i-1 {
			b.i++
			b.j = 0
			continue
		}
		j := b.j
		if !b.compared {
			b.compared = true
			return sortstep.Compare(j, j+1, b.narr.Sprintf(narrate.Compare, a[j], a[j+1], j, j+1))
		}
		b.compared = false
		b.j++
		if a[j] > a[j+1] {
			return sortstep.Swap(j, j+1, b.narr.Sprintf(narrate.Swap, a[j], a[j+1]))
		}
	}
	b.done = true
	return sortstep.Done(a, b.narr.Sprintf(narrate.Sorted))
}
