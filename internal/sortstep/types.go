package sortstep

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	MinValue  = 1
	MaxValue  = 100
	MinLength = 2
	MaxLength = 25
)

// Array is the working list. Its length is constant for the duration of a run.
type Array []int

func (a Array) Clone() Array {
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) IsSorted() bool {
	return slices.IsSorted(a)
}

// SameElements reports whether b is a permutation of a.
func (a Array) SameElements(b Array) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := a.Clone(), b.Clone()
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// String renders the array the way the list panel shows it: "[ 1, 2, 3 ]".
func (a Array) String() string {
	if len(a) == 0 {
		return "[ ]"
	}
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.Itoa(v)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

type Kind int

const (
	KindCompare Kind = iota
	KindSwap
	KindOverwrite
	KindDivide
	KindMerge
	KindPivot
	KindPartition
	KindNote
	KindDone
)

var kindNames = [...]string{
	KindCompare:   "compare",
	KindSwap:      "swap",
	KindOverwrite: "overwrite",
	KindDivide:    "divide",
	KindMerge:     "merge",
	KindPivot:     "pivot",
	KindPartition: "partition",
	KindNote:      "note",
	KindDone:      "done",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Structural reports whether k marks a divide/merge/partition boundary
// rather than an element-level operation.
func (k Kind) Structural() bool {
	switch k {
	case KindDivide, KindMerge, KindPivot, KindPartition:
		return true
	}
	return false
}

// Mutates reports whether applying a step of kind k can change the array.
func (k Kind) Mutates() bool {
	return k == KindSwap || k == KindOverwrite || k == KindDone
}

// Step is one atomic, inspectable unit of progress.
//
// Field use by kind:
//
//	Compare, Swap     I, J
//	Overwrite         I, Value
//	Divide, Merge     Lo, Mid, Hi
//	Pivot             Lo, Hi (pivot at Hi)
//	Partition         I (final pivot index), Lo, Hi
//	Done              Final
type Step struct {
	Kind        Kind
	I, J        int
	Value       int
	Lo, Mid, Hi int
	Final       Array
	Highlight   []int
	Narration   string
}

func Compare(i, j int, narration string) Step {
	return Step{Kind: KindCompare, I: i, J: j, Highlight: []int{i, j}, Narration: narration}
}

func Swap(i, j int, narration string) Step {
	return Step{Kind: KindSwap, I: i, J: j, Highlight: []int{i, j}, Narration: narration}
}

func Overwrite(i, value int, narration string) Step {
	return Step{Kind: KindOverwrite, I: i, Value: value, Highlight: []int{i}, Narration: narration}
}

func Divide(lo, mid, hi int, narration string) Step {
	return Step{Kind: KindDivide, Lo: lo, Mid: mid, Hi: hi, Highlight: span(lo, hi), Narration: narration}
}

func Merge(lo, mid, hi int, narration string) Step {
	return Step{Kind: KindMerge, Lo: lo, Mid: mid, Hi: hi, Highlight: span(lo, hi), Narration: narration}
}

func Pivot(lo, hi int, narration string) Step {
	return Step{Kind: KindPivot, I: hi, Lo: lo, Hi: hi, Highlight: []int{hi}, Narration: narration}
}

func Partition(p, lo, hi int, narration string) Step {
	return Step{Kind: KindPartition, I: p, Lo: lo, Hi: hi, Highlight: []int{p}, Narration: narration}
}

// Note is an observation-only step that carries narration and highlights.
func Note(narration string, highlight ...int) Step {
	return Step{Kind: KindNote, Highlight: highlight, Narration: narration}
}

func Done(final Array, narration string) Step {
	return Step{Kind: KindDone, Final: final.Clone(), Narration: narration}
}

func span(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	idx := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		idx = append(idx, i)
	}
	return idx
}

// Apply validates s against a and performs its mutation, if any.
// A step that fails validation leaves a untouched.
func (s Step) Apply(a Array) error {
	if err := checkIndex(a, s.Highlight...); err != nil {
		return err
	}
	switch s.Kind {
	case KindCompare:
		return checkIndex(a, s.I, s.J)
	case KindSwap:
		if err := checkIndex(a, s.I, s.J); err != nil {
			return err
		}
		a[s.I], a[s.J] = a[s.J], a[s.I]
	case KindOverwrite:
		if err := checkIndex(a, s.I); err != nil {
			return err
		}
		a[s.I] = s.Value
	case KindDivide, KindMerge:
		if s.Lo > s.Mid || s.Mid > s.Hi {
			return fmt.Errorf("%w: range [%d,%d,%d]", ErrIndexOutOfRange, s.Lo, s.Mid, s.Hi)
		}
		return checkIndex(a, s.Lo, s.Hi)
	case KindPivot:
		if s.Lo > s.Hi {
			return fmt.Errorf("%w: range [%d,%d]", ErrIndexOutOfRange, s.Lo, s.Hi)
		}
		return checkIndex(a, s.Lo, s.Hi)
	case KindPartition:
		return checkIndex(a, s.I)
	case KindNote:
	case KindDone:
		if len(s.Final) != len(a) {
			return fmt.Errorf("%w: final length %d, want %d", ErrIndexOutOfRange, len(s.Final), len(a))
		}
		copy(a, s.Final)
	default:
		return fmt.Errorf("%w: unknown step kind %d", ErrIndexOutOfRange, int(s.Kind))
	}
	return nil
}

func checkIndex(a Array, idx ...int) error {
	for _, i := range idx {
		if i < 0 || i >= len(a) {
			return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(a))
		}
	}
	return nil
}

// VerifyDone checks that final is the sorted permutation of initial.
func VerifyDone(initial, final Array) error {
	if !initial.SameElements(final) {
		return ErrNotPermutation
	}
	if !final.IsSorted() {
		return ErrNotSorted
	}
	return nil
}

// StepBudget bounds the number of steps any generator may take on an
// array of length n. Exceeding it is treated as non-termination.
func StepBudget(n int) int {
	return 2*n*n + 8*n + 16
}

// Narrator formats a narration message in the active language.
type Narrator interface {
	Sprintf(key string, args ...any) string
}

// Generator produces the next step of a sort. It may read a but must not
// modify it; the caller applies the returned step. After Done it keeps
// returning Done.
type Generator interface {
	Next(a Array) Step
}

// PendingRanger is implemented by divide-and-conquer generators that keep
// an explicit stack of pending ranges in place of recursion.
type PendingRanger interface {
	PendingRanges() int
}
