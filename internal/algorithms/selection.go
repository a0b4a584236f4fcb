package algorithms

import (
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

// Selection finds the minimum of the unsorted suffix within a single step;
// only the resulting swap (or its absence) is observable.
type Selection struct {
	narr sortstep.Narrator
	i    int
	done bool
}

func NewSelection(narr sortstep.Narrator) *Selection {
	return &Selection{narr: narr}
}

func (s *Selection) Next(a sortstep.Array) sortstep.Step {
	n := len(a)
	if s.done || s.i >= n-1 {
		s.done = true
		return sortstep.Done(a, s.narr.Sprintf(narrate.Sorted))
	}

	i := s.i
	s.i++
	minAt := i
	for j := i + 1; j < n; j++ {
		if a[j] < a[minAt] {
			minAt = j
		}
	}
	if minAt != i {
		return sortstep.Swap(i, minAt, s.narr.Sprintf(narrate.MinFound, a[minAt], minAt, a[i]))
	}
	return sortstep.Note(s.narr.Sprintf(narrate.AlreadyMin, i), i)
}
