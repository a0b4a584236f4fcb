package viz

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sortstep/internal/session"
)

// Run starts the interactive visualizer and blocks until the user quits or
// ctx is cancelled. The session's notifier and controls are replaced by the
// program's sink.
func Run(ctx context.Context, sessOpts session.Options, opts Options) error {
	sink := NewTUISink(nil)
	sessOpts.Notifier = sink
	sessOpts.Controls = sink
	sess := session.New(sink, sessOpts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(sess, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	sink.Attach(p)
	_, err := p.Run()

	// unblock any tick still waiting on Send before stopping the run
	cancel()
	sink.Attach(nil)
	sess.Stop()

	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
