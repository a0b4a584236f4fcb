package algorithms

import (
	"fmt"

	"github.com/san-kum/sortstep/internal/sortstep"
)

// Factory builds a fresh generator for one run.
type Factory func(narr sortstep.Narrator) sortstep.Generator

type Registry struct {
	factories map[string]Factory
	titles    map[string]string
	order     []string
}

func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}

	r.Register("bubble", "Bubble Sort", func(n sortstep.Narrator) sortstep.Generator { return NewBubble(n) })
	r.Register("insertion", "Insertion Sort", func(n sortstep.Narrator) sortstep.Generator { return NewInsertion(n) })
	r.Register("selection", "Selection Sort", func(n sortstep.Narrator) sortstep.Generator { return NewSelection(n) })
	r.Register("merge", "Merge Sort", func(n sortstep.Narrator) sortstep.Generator { return NewMerge(n) })
	r.Register("quick", "Quick Sort", func(n sortstep.Narrator) sortstep.Generator { return NewQuick(n) })

	return r
}

// Register adds or replaces an algorithm. Names keep registration order.
func (r *Registry) Register(name, title string, f Factory) {
	if _, ok := r.factories[name]; !ok {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
	r.titles[name] = title
}

func (r *Registry) Get(name string, narr sortstep.Narrator) (sortstep.Generator, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sortstep.ErrUnknownAlgorithm, name)
	}
	return f(narr), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Title returns the display name, or name itself when unknown.
func (r *Registry) Title(name string) string {
	if t, ok := r.titles[name]; ok {
		return t
	}
	return name
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
