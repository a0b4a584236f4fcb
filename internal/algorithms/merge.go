package algorithms

import (
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

// mergeTask is either a range waiting to be split or a merge waiting for
// both of its halves.
type mergeTask struct {
	lo, mid, hi int
	merge       bool
}

// Merge is a top-down merge sort driven by an explicit task stack.
type Merge struct {
	narr    sortstep.Narrator
	stack   []mergeTask
	started bool
	done    bool

	// active merge: buf holds the merged range, placed one element per step
	lo    int
	buf   []int
	sides []string
	k     int
}

func NewMerge(narr sortstep.Narrator) *Merge {
	return &Merge{narr: narr}
}

func (m *Merge) Next(a sortstep.Array) sortstep.Step {
	if !m.started {
		m.started = true
		m.stack = append(m.stack, mergeTask{lo: 0, hi: len(a) - 1})
	}

	for !m.done {
		if m.buf != nil {
			if m.k < len(m.buf) {
				k := m.k
				m.k++
				at := m.lo + k
				return sortstep.Overwrite(at, m.buf[k], m.narr.Sprintf(m.sides[k], m.buf[k], at))
			}
			m.buf, m.sides = nil, nil
			continue
		}

		if len(m.stack) == 0 {
			m.done = true
			break
		}
		t := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]

		if t.merge {
			m.begin(a, t)
			return sortstep.Merge(t.lo, t.mid, t.hi, m.narr.Sprintf(narrate.Merge, t.lo, t.mid, t.mid+1, t.hi))
		}
		if t.lo >= t.hi {
			continue
		}

		mid := (t.lo + t.hi) / 2
		// right half is pushed first so the left half runs first
		m.stack = append(m.stack,
			mergeTask{lo: t.lo, mid: mid, hi: t.hi, merge: true},
			mergeTask{lo: mid + 1, hi: t.hi},
			mergeTask{lo: t.lo, hi: mid},
		)
		return sortstep.Divide(t.lo, mid, t.hi, m.narr.Sprintf(narrate.Divide, t.lo, t.hi, t.lo, mid, mid+1, t.hi))
	}
	return sortstep.Done(a, m.narr.Sprintf(narrate.Sorted))
}

// begin performs the two-pointer merge of a[lo..mid] and a[mid+1..hi] into
// a scratch buffer. Ties take the left element first.
func (m *Merge) begin(a sortstep.Array, t mergeTask) {
	left := a[t.lo : t.mid+1]
	right := a[t.mid+1 : t.hi+1]
	m.lo, m.k = t.lo, 0
	m.buf = make([]int, 0, len(left)+len(right))
	m.sides = make([]string, 0, len(left)+len(right))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			m.buf = append(m.buf, left[i])
			m.sides = append(m.sides, narrate.PlaceLeft)
			i++
		} else {
			m.buf = append(m.buf, right[j])
			m.sides = append(m.sides, narrate.PlaceRight)
			j++
		}
	}
	for ; i < len(left); i++ {
		m.buf = append(m.buf, left[i])
		m.sides = append(m.sides, narrate.PlaceLeftRest)
	}
	for ; j < len(right); j++ {
		m.buf = append(m.buf, right[j])
		m.sides = append(m.sides, narrate.PlaceRightRest)
	}
}

// PendingRanges counts ranges still waiting to be split; merge markers are
// not ranges.
func (m *Merge) PendingRanges() int {
	n := 0
	for _, t := range m.stack {
		if !t.merge {
			n++
		}
	}
	return n
}
