package stepper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/sortstep/internal/sortstep"
)

func TestManualClock_FiresInDeadlineOrder(t *testing.T) {
	c := NewManualClock()
	var order []string
	c.AfterFunc(50*time.Millisecond, func() { order = append(order, "late") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "early") })

	assert.Equal(t, 2, c.Drain(10))
	assert.Equal(t, []string{"early", "late"}, order)
	assert.Equal(t, 50*time.Millisecond, c.Now())
	assert.False(t, c.Step())
}

func TestManualClock_Stop(t *testing.T) {
	c := NewManualClock()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, c.Pending())
	assert.False(t, c.Step())
	assert.False(t, fired)
}

func TestManualClock_RelativeToNow(t *testing.T) {
	c := NewManualClock()
	c.AfterFunc(100*time.Millisecond, func() {
		c.AfterFunc(100*time.Millisecond, func() {})
	})
	c.Drain(5)
	assert.Equal(t, 200*time.Millisecond, c.Now())
}

func TestDelays_For(t *testing.T) {
	d := DefaultDelays()
	assert.Equal(t, 600*time.Millisecond, d.For(sortstep.KindCompare))
	assert.Equal(t, 600*time.Millisecond, d.For(sortstep.KindOverwrite))
	assert.Equal(t, 800*time.Millisecond, d.For(sortstep.KindDivide))
	assert.Equal(t, 800*time.Millisecond, d.For(sortstep.KindPartition))
}
