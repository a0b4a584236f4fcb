// Package session is the control surface of the visualizer: it validates
// user commands, turns their failures into notifications and forwards the
// rest to the step scheduler.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortstep/internal/algorithms"
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/stepper"
)

type Options struct {
	Clock    stepper.Clock
	Delays   stepper.Delays
	Notifier stepper.Notifier
	Controls stepper.Controls
	Narrator sortstep.Narrator
	Registry *algorithms.Registry
	Logger   *slog.Logger
	// Seed drives list generation; zero seeds from the wall clock.
	Seed int64
}

type Session struct {
	sched    *stepper.Scheduler
	registry *algorithms.Registry
	narr     sortstep.Narrator
	notifier stepper.Notifier
	logger   *slog.Logger
	rng      *rand.Rand
}

func New(sink stepper.Sink, opts Options) *Session {
	if opts.Narrator == nil {
		opts.Narrator = narrate.English()
	}
	if opts.Notifier == nil {
		opts.Notifier = stepper.Discard
	}
	if opts.Registry == nil {
		opts.Registry = algorithms.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Session{
		sched: stepper.New(sink, stepper.Options{
			Clock:    opts.Clock,
			Delays:   opts.Delays,
			Notifier: opts.Notifier,
			Controls: opts.Controls,
			Narrator: opts.Narrator,
			Logger:   opts.Logger,
		}),
		registry: opts.Registry,
		narr:     opts.Narrator,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (s *Session) Scheduler() *stepper.Scheduler  { return s.sched }
func (s *Session) Registry() *algorithms.Registry { return s.registry }
func (s *Session) Narrator() sortstep.Narrator     { return s.narr }
func (s *Session) List() sortstep.Array           { return s.sched.List() }
func (s *Session) Running() bool                  { return s.sched.Running() }
func (s *Session) Steps() int                     { return s.sched.Steps() }
func (s *Session) Err() error                     { return s.sched.Err() }

// AddElement appends v to the list.
func (s *Session) AddElement(v int) error {
	if v < sortstep.MinValue || v > sortstep.MaxValue {
		return s.reject(&sortstep.InputError{Field: "value", Value: strconv.Itoa(v), Err: sortstep.ErrValueRange})
	}
	if err := s.sched.Append(v, s.narr.Sprintf(narrate.Added, v)); err != nil {
		return s.reject(&sortstep.InputError{Field: "value", Value: strconv.Itoa(v), Err: err})
	}
	s.notifier.Notify(s.narr.Sprintf(narrate.Added, v))
	return nil
}

// AddElementText parses a text field and appends its value.
func (s *Session) AddElementText(text string) error {
	v, err := parseInt(text)
	if err != nil {
		return s.reject(&sortstep.InputError{Field: "value", Value: text, Err: err})
	}
	return s.AddElement(v)
}

// Generate replaces the list with size random elements.
func (s *Session) Generate(size int) error {
	if size < 1 || size > sortstep.MaxLength {
		return s.reject(&sortstep.InputError{Field: "size", Value: strconv.Itoa(size), Err: sortstep.ErrSizeRange})
	}
	list := RandomList(s.rng, size)
	if err := s.sched.Replace(list, s.narr.Sprintf(narrate.GeneratedNote)); err != nil {
		return s.reject(&sortstep.InputError{Field: "size", Value: strconv.Itoa(size), Err: err})
	}
	s.logger.Debug("list generated", "size", size, "list", list.String())
	s.notifier.Notify(s.narr.Sprintf(narrate.Generated, size))
	return nil
}

// GenerateText parses a size field and generates a list of that size.
func (s *Session) GenerateText(text string) error {
	size, err := parseInt(text)
	if err != nil {
		return s.reject(&sortstep.InputError{Field: "size", Value: text, Err: err})
	}
	return s.Generate(size)
}

// SetList loads a whole list at once, as presets and --list do.
func (s *Session) SetList(list sortstep.Array) error {
	if len(list) > sortstep.MaxLength {
		return s.reject(&sortstep.InputError{Field: "list", Value: list.String(), Err: sortstep.ErrListFull})
	}
	for _, v := range list {
		if v < sortstep.MinValue || v > sortstep.MaxValue {
			return s.reject(&sortstep.InputError{Field: "list", Value: strconv.Itoa(v), Err: sortstep.ErrValueRange})
		}
	}
	if err := s.sched.Replace(list, ""); err != nil {
		return s.reject(&sortstep.InputError{Field: "list", Value: list.String(), Err: err})
	}
	return nil
}

// StartSort animates the named algorithm over the current list.
func (s *Session) StartSort(name string) error {
	gen, err := s.registry.Get(name, s.narr)
	if err != nil {
		return s.reject(&sortstep.StartError{Algorithm: name, Err: sortstep.ErrUnknownAlgorithm})
	}
	if err := s.sched.Start(name, gen); err != nil {
		return s.reject(err)
	}
	return nil
}

func (s *Session) Stop() { s.sched.Stop() }
func (s *Session) Skip() { s.sched.Skip() }

// Reset cancels any run and clears the list.
func (s *Session) Reset() {
	s.sched.Reset()
	s.notifier.Notify(s.narr.Sprintf(narrate.ResetDone))
}

// reject surfaces err as a notification and returns it unchanged.
func (s *Session) reject(err error) error {
	s.logger.Debug("command rejected", "error", err)
	s.notifier.Notify(s.message(err))
	return err
}

func (s *Session) message(err error) string {
	var (
		start *sortstep.StartError
		input *sortstep.InputError
	)
	switch {
	case errors.As(err, &input) && input.Field == "size" && errors.Is(err, sortstep.ErrMissingValue):
		return s.narr.Sprintf(narrate.EnterSize)
	case errors.Is(err, sortstep.ErrMissingValue):
		return s.narr.Sprintf(narrate.EnterNumber)
	case errors.Is(err, sortstep.ErrValueRange):
		return s.narr.Sprintf(narrate.OnlyRange)
	case errors.Is(err, sortstep.ErrListFull):
		return s.narr.Sprintf(narrate.MaxElements)
	case errors.Is(err, sortstep.ErrSizeRange):
		return s.narr.Sprintf(narrate.SizeRange)
	case errors.Is(err, sortstep.ErrBusy), errors.Is(err, sortstep.ErrAlreadyRunning):
		return s.narr.Sprintf(narrate.AlreadyRunning)
	case errors.Is(err, sortstep.ErrTooFewElements):
		return s.narr.Sprintf(narrate.NeedTwo)
	case errors.As(err, &start) && errors.Is(err, sortstep.ErrUnknownAlgorithm):
		return s.narr.Sprintf(narrate.UnknownAlgorithm, start.Algorithm)
	}
	return err.Error()
}

// RandomList draws size elements uniformly from [MinValue, MaxValue].
func RandomList(rng *rand.Rand, size int) sortstep.Array {
	list := make(sortstep.Array, size)
	for i := range list {
		list[i] = sortstep.MinValue + rng.Intn(sortstep.MaxValue-sortstep.MinValue+1)
	}
	return list
}

func parseInt(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, sortstep.ErrMissingValue
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sortstep.ErrMissingValue, err)
	}
	return v, nil
}

// ParseList parses a comma or space separated list such as "5,1,4".
func ParseList(text string) (sortstep.Array, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	list := make(sortstep.Array, 0, len(fields))
	for _, f := range fields {
		v, err := parseInt(f)
		if err != nil {
			return nil, &sortstep.InputError{Field: "list", Value: f, Err: err}
		}
		if v < sortstep.MinValue || v > sortstep.MaxValue {
			return nil, &sortstep.InputError{Field: "list", Value: f, Err: sortstep.ErrValueRange}
		}
		list = append(list, v)
	}
	if len(list) > sortstep.MaxLength {
		return nil, &sortstep.InputError{Field: "list", Value: text, Err: sortstep.ErrListFull}
	}
	return list, nil
}
