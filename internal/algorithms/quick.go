package algorithms

import (
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

type span struct {
	low, high int
}

// partition is the cursor of one Lomuto pass over [low, high].
type partition struct {
	low, high int
	pivot     int
	i, j      int
	compared  bool
	placed    bool
}

// Quick is a Lomuto quick sort (pivot = last element of the range) driven
// by an explicit stack of pending ranges.
type Quick struct {
	narr    sortstep.Narrator
	stack   []span
	part    *partition
	started bool
	done    bool
}

func NewQuick(narr sortstep.Narrator) *Quick {
	return &Quick{narr: narr}
}

func (q *Quick) Next(a sortstep.Array) sortstep.Step {
	if !q.started {
		q.started = true
		q.stack = append(q.stack, span{low: 0, high: len(a) - 1})
	}

	for !q.done {
		if p := q.part; p != nil {
			if p.j < p.high {
				j := p.j
				if !p.compared {
					p.compared = true
					return sortstep.Compare(j, p.high, q.narr.Sprintf(narrate.PivotCompare, a[j], p.pivot))
				}
				p.compared = false
				p.j++
				if a[j] <= p.pivot {
					p.i++
					if p.i != j {
						return sortstep.Swap(p.i, j, q.narr.Sprintf(narrate.PivotSwap, a[p.i], a[j]))
					}
				}
				continue
			}

			at := p.i + 1
			if !p.placed {
				p.placed = true
				if at != p.high {
					return sortstep.Swap(at, p.high, q.narr.Sprintf(narrate.PlacePivot, p.pivot, at))
				}
			}
			q.part = nil
			// right range is pushed first so the left range runs first
			q.stack = append(q.stack, span{low: at + 1, high: p.high}, span{low: p.low, high: at - 1})
			return sortstep.Partition(at, p.low, p.high, q.narr.Sprintf(narrate.PivotFixed, p.pivot, at))
		}

		if len(q.stack) == 0 {
			q.done = true
			break
		}
		s := q.stack[len(q.stack)-1]
		q.stack = q.stack[:len(q.stack)-1]
		if s.low >= s.high {
			continue
		}
		q.part = &partition{
			low:   s.low,
			high:  s.high,
			pivot: a[s.high],
			i:     s.low - 1,
			j:     s.low,
		}
		return sortstep.Pivot(s.low, s.high, q.narr.Sprintf(narrate.SubRange, s.low, s.high, a[s.high], s.high))
	}
	return sortstep.Done(a, q.narr.Sprintf(narrate.Sorted))
}

func (q *Quick) PendingRanges() int {
	return len(q.stack)
}
