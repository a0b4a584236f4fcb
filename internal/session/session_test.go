package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/stepper"
)

type notes struct{ msgs []string }

func (n *notes) Notify(msg string) { n.msgs = append(n.msgs, msg) }

func (n *notes) last() string {
	if len(n.msgs) == 0 {
		return ""
	}
	return n.msgs[len(n.msgs)-1]
}

func newSession(t *testing.T) (*Session, *stepper.ManualClock, *notes) {
	t.Helper()
	clock := stepper.NewManualClock()
	n := &notes{}
	s := New(nil, Options{
		Clock:    clock,
		Notifier: n,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:     42,
	})
	return s, clock, n
}

func TestAddElement_Bounds(t *testing.T) {
	s, _, n := newSession(t)

	for _, v := range []int{0, 101, -5} {
		err := s.AddElement(v)
		assert.ErrorIs(t, err, sortstep.ErrValueRange, "value %d", v)
		assert.Equal(t, "Only numbers between 1 and 100.", n.last())
	}
	assert.Empty(t, s.List())

	require.NoError(t, s.AddElement(1))
	require.NoError(t, s.AddElement(100))
	assert.Equal(t, sortstep.Array{1, 100}, s.List())
	assert.Equal(t, "Number 100 added.", n.last())
}

func TestAddElement_Full(t *testing.T) {
	s, _, n := newSession(t)
	for i := 0; i < sortstep.MaxLength; i++ {
		require.NoError(t, s.AddElement(i+1))
	}

	err := s.AddElement(50)
	var input *sortstep.InputError
	require.ErrorAs(t, err, &input)
	assert.ErrorIs(t, err, sortstep.ErrListFull)
	assert.Equal(t, "Maximum 25 numbers.", n.last())
	assert.Len(t, s.List(), sortstep.MaxLength)
}

func TestAddElementText(t *testing.T) {
	s, _, n := newSession(t)

	assert.ErrorIs(t, s.AddElementText(""), sortstep.ErrMissingValue)
	assert.Equal(t, "Please enter a number.", n.last())
	assert.ErrorIs(t, s.AddElementText("abc"), sortstep.ErrMissingValue)
	assert.ErrorIs(t, s.AddElementText("101"), sortstep.ErrValueRange)

	require.NoError(t, s.AddElementText(" 42 "))
	assert.Equal(t, sortstep.Array{42}, s.List())
}

func TestGenerate_Bounds(t *testing.T) {
	s, _, n := newSession(t)

	for _, size := range []int{0, 26} {
		assert.ErrorIs(t, s.Generate(size), sortstep.ErrSizeRange, "size %d", size)
		assert.Equal(t, "Size must be between 1 and 25.", n.last())
	}

	require.NoError(t, s.Generate(25))
	list := s.List()
	assert.Len(t, list, 25)
	for _, v := range list {
		assert.GreaterOrEqual(t, v, sortstep.MinValue)
		assert.LessOrEqual(t, v, sortstep.MaxValue)
	}
	assert.Equal(t, "List of 25 generated.", n.last())

	require.NoError(t, s.Generate(1))
	assert.Len(t, s.List(), 1)
}

func TestGenerate_Seeded(t *testing.T) {
	a, _, _ := newSession(t)
	b, _, _ := newSession(t)
	require.NoError(t, a.Generate(10))
	require.NoError(t, b.Generate(10))
	assert.Equal(t, a.List(), b.List())
}

func TestGenerateText(t *testing.T) {
	s, _, n := newSession(t)
	assert.ErrorIs(t, s.GenerateText("x"), sortstep.ErrMissingValue)
	assert.Equal(t, "Enter a valid size.", n.last())
	require.NoError(t, s.GenerateText("7"))
	assert.Len(t, s.List(), 7)
}

func TestStartSort_Rejections(t *testing.T) {
	s, clock, n := newSession(t)
	require.NoError(t, s.AddElement(3))

	err := s.StartSort("bubble")
	assert.ErrorIs(t, err, sortstep.ErrTooFewElements)
	assert.Equal(t, "You need at least 2 numbers to sort.", n.last())

	require.NoError(t, s.AddElement(1))
	err = s.StartSort("shell")
	var start *sortstep.StartError
	require.ErrorAs(t, err, &start)
	assert.ErrorIs(t, err, sortstep.ErrUnknownAlgorithm)
	assert.Equal(t, "Unknown algorithm: shell.", n.last())

	require.NoError(t, s.StartSort("bubble"))
	assert.ErrorIs(t, s.StartSort("quick"), sortstep.ErrAlreadyRunning)
	assert.Equal(t, "A sort is already running.", n.last())
	assert.Equal(t, 1, clock.Pending())
}

func TestEditsRejectedWhileRunning(t *testing.T) {
	s, _, n := newSession(t)
	require.NoError(t, s.SetList(sortstep.Array{5, 1, 4}))
	require.NoError(t, s.StartSort("insertion"))

	assert.ErrorIs(t, s.AddElement(9), sortstep.ErrBusy)
	assert.Equal(t, "A sort is already running.", n.last())
	assert.ErrorIs(t, s.Generate(4), sortstep.ErrBusy)
	assert.Equal(t, sortstep.Array{5, 1, 4}, s.List())
}

func TestFullRunThenReset(t *testing.T) {
	s, clock, n := newSession(t)
	require.NoError(t, s.SetList(sortstep.Array{3, 6, 2, 7}))
	require.NoError(t, s.StartSort("quick"))
	clock.Drain(1000)

	assert.False(t, s.Running())
	assert.Equal(t, sortstep.Array{2, 3, 6, 7}, s.List())
	assert.Equal(t, "Sorting completed.", n.last())
	assert.Greater(t, s.Steps(), 0)
	assert.NoError(t, s.Err())

	s.Reset()
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.Steps())
	assert.Equal(t, "List reset.", n.last())
}

func TestStopAndSkipIdle(t *testing.T) {
	s, _, n := newSession(t)
	require.NoError(t, s.SetList(sortstep.Array{2, 1}))
	before := len(n.msgs)

	s.Stop()
	s.Skip()
	assert.Equal(t, sortstep.Array{2, 1}, s.List())
	assert.Len(t, n.msgs, before)
}

func TestSpanishNotifications(t *testing.T) {
	p, err := narrate.New("es")
	require.NoError(t, err)
	n := &notes{}
	s := New(nil, Options{
		Clock:    stepper.NewManualClock(),
		Notifier: n,
		Narrator: p,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:     1,
	})

	_ = s.AddElement(0)
	assert.Equal(t, p.Sprintf(narrate.OnlyRange), n.last())
	assert.NotEqual(t, narrate.OnlyRange, n.last())
}

func TestParseList(t *testing.T) {
	list, err := ParseList("5,1, 4 2\t8")
	require.NoError(t, err)
	assert.Equal(t, sortstep.Array{5, 1, 4, 2, 8}, list)

	_, err = ParseList("5,x")
	assert.ErrorIs(t, err, sortstep.ErrMissingValue)

	_, err = ParseList("5,0")
	assert.ErrorIs(t, err, sortstep.ErrValueRange)

	long := ""
	for i := 0; i < 26; i++ {
		long += "1,"
	}
	_, err = ParseList(long)
	assert.ErrorIs(t, err, sortstep.ErrListFull)

	list, err = ParseList("")
	require.NoError(t, err)
	assert.Empty(t, list)
}
