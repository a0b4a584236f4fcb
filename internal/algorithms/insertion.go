package algorithms

import (
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

type insertPhase int

const (
	phasePick insertPhase = iota
	phaseCompare
	phaseShift
	phasePlace
)

// Insertion holds the current key outside the array while larger elements
// are shifted right one Overwrite at a time.
type Insertion struct {
	narr  sortstep.Narrator
	i, j  int
	key   int
	phase insertPhase
	done  bool
}

func NewInsertion(narr sortstep.Narrator) *Insertion {
	return &Insertion{narr: narr, i: 1}
}

func (s *Insertion) Next(a sortstep.Array) sortstep.Step {
	for !s.done {
		switch s.phase {
		case phasePick:
			if s.i >= len(a) {
				s.done = true
				continue
			}
			s.key = a[s.i]
			s.j = s.i - 1
			s.phase = phaseCompare
			return sortstep.Note(s.narr.Sprintf(narrate.InsertKey, s.key), s.i)

		case phaseCompare:
			if s.j < 0 {
				s.phase = phasePlace
				continue
			}
			s.phase = phaseShift
			return sortstep.Compare(s.j, s.j+1, s.narr.Sprintf(narrate.KeyCompare, a[s.j], s.key))

		case phaseShift:
			if a[s.j] <= s.key {
				s.phase = phasePlace
				continue
			}
			j := s.j
			s.j--
			s.phase = phaseCompare
			return sortstep.Overwrite(j+1, a[j], s.narr.Sprintf(narrate.Shift, a[j], s.key, j, j+1))

		case phasePlace:
			at := s.j + 1
			s.i++
			s.phase = phasePick
			return sortstep.Overwrite(at, s.key, s.narr.Sprintf(narrate.PlaceKey, s.key, at))
		}
	}
	return sortstep.Done(a, s.narr.Sprintf(narrate.Sorted))
}
