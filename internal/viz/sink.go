package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sortstep/internal/stepper"
)

// Sender is implemented by tea.Program and test doubles.
type Sender interface {
	Send(msg tea.Msg)
}

// FrameMsg carries a scheduler frame into the Bubble Tea loop.
type FrameMsg stepper.Frame

// NoticeMsg is a transient notification.
type NoticeMsg string

// RunningMsg toggles between start-class and stop-class controls.
type RunningMsg bool

// TUISink forwards scheduler output to a Bubble Tea program. Messages sent
// before a sender is attached, or after it is detached, are dropped.
type TUISink struct {
	mu     sync.Mutex
	sender Sender
}

func NewTUISink(sender Sender) *TUISink {
	return &TUISink{sender: sender}
}

// Attach sets the destination program; nil detaches.
func (s *TUISink) Attach(sender Sender) {
	s.mu.Lock()
	s.sender = sender
	s.mu.Unlock()
}

func (s *TUISink) Render(f stepper.Frame)  { s.emit(FrameMsg(f)) }
func (s *TUISink) Notify(msg string)       { s.emit(NoticeMsg(msg)) }
func (s *TUISink) SetRunning(running bool) { s.emit(RunningMsg(running)) }

func (s *TUISink) emit(msg any) {
	if s == nil {
		return
	}
	s.mu.Lock()
	sender := s.sender
	s.mu.Unlock()
	if sender == nil {
		return
	}
	sender.Send(msg)
}

var (
	_ stepper.Sink     = (*TUISink)(nil)
	_ stepper.Notifier = (*TUISink)(nil)
	_ stepper.Controls = (*TUISink)(nil)
)
