package stepper

import (
	"io"
	"log/slog"

	"github.com/san-kum/sortstep/internal/sortstep"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recorder struct {
	frames  []Frame
	notes   []string
	running []bool
}

func (r *recorder) Render(f Frame)          { r.frames = append(r.frames, f) }
func (r *recorder) Notify(msg string)       { r.notes = append(r.notes, msg) }
func (r *recorder) SetRunning(running bool) { r.running = append(r.running, running) }

func (r *recorder) last() Frame {
	if len(r.frames) == 0 {
		return Frame{}
	}
	return r.frames[len(r.frames)-1]
}

// badIndex swaps past the end of the array.
type badIndex struct{}

func (badIndex) Next(a sortstep.Array) sortstep.Step {
	return sortstep.Swap(0, len(a)+3, "")
}

// endless never reaches Done.
type endless struct{}

func (endless) Next(a sortstep.Array) sortstep.Step {
	return sortstep.Note("thinking")
}

// liar claims the input is already sorted.
type liar struct{}

func (liar) Next(a sortstep.Array) sortstep.Step {
	return sortstep.Done(a, "done")
}
