package stepper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortstep/internal/algorithms"
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

type countMetric struct{ n float64 }

func (c *countMetric) Name() string                                 { return "count" }
func (c *countMetric) Observe(step sortstep.Step, a sortstep.Array) { c.n++ }
func (c *countMetric) Value() float64                               { return c.n }
func (c *countMetric) Reset()                                       { c.n = 0 }

func newGen(t *testing.T, name string) sortstep.Generator {
	t.Helper()
	gen, err := algorithms.NewRegistry().Get(name, narrate.English())
	require.NoError(t, err)
	return gen
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner()
	m := &countMetric{}
	r.AddMetric(m)

	in := sortstep.Array{5, 1, 4, 2, 8}
	res, err := r.Run(context.Background(), "bubble", newGen(t, "bubble"), in)
	require.NoError(t, err)

	assert.Equal(t, sortstep.Array{1, 2, 4, 5, 8}, res.Final)
	assert.Equal(t, in, res.Initial)
	assert.Equal(t, sortstep.KindDone, res.Steps[len(res.Steps)-1].Kind)
	assert.Equal(t, float64(len(res.Steps)), res.Metrics["count"])
	assert.Equal(t, sortstep.Array{5, 1, 4, 2, 8}, in, "input must not be modified")
}

func TestRunner_MetricsResetBetweenRuns(t *testing.T) {
	r := NewRunner()
	m := &countMetric{}
	r.AddMetric(m)

	first, err := r.Run(context.Background(), "quick", newGen(t, "quick"), sortstep.Array{3, 6, 2, 7})
	require.NoError(t, err)
	second, err := r.Run(context.Background(), "quick", newGen(t, "quick"), sortstep.Array{3, 6, 2, 7})
	require.NoError(t, err)
	assert.Equal(t, first.Metrics["count"], second.Metrics["count"])
}

func TestRunner_MaxPending(t *testing.T) {
	res, err := NewRunner().Run(context.Background(), "merge", newGen(t, "merge"), sortstep.Array{8, 7, 6, 5, 4, 3, 2, 1})
	require.NoError(t, err)
	assert.Greater(t, res.MaxPending, 0)
	assert.LessOrEqual(t, res.MaxPending, 8)
}

func TestRunner_TooFewElements(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), "bubble", newGen(t, "bubble"), sortstep.Array{1})
	assert.ErrorIs(t, err, sortstep.ErrTooFewElements)
}

func TestRunner_Faults(t *testing.T) {
	tests := []struct {
		name string
		gen  sortstep.Generator
		want error
	}{
		{"bad index", badIndex{}, sortstep.ErrIndexOutOfRange},
		{"endless", endless{}, sortstep.ErrNoProgress},
		{"liar", liar{}, sortstep.ErrNotSorted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner().Run(context.Background(), tt.name, tt.gen, sortstep.Array{3, 1, 2})
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, sortstep.IsInvariant(err))
		})
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner().Run(ctx, "bubble", newGen(t, "bubble"), sortstep.Array{2, 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_RunWithCallback(t *testing.T) {
	var seen int
	err := NewRunner().RunWithCallback(context.Background(), "selection", newGen(t, "selection"),
		sortstep.Array{4, 3, 2, 1}, func(step sortstep.Step, a sortstep.Array) bool {
			seen++
			return true
		})
	require.NoError(t, err)
	assert.Equal(t, 4, seen)
}

func TestRunner_RunWithCallbackStops(t *testing.T) {
	var seen int
	err := NewRunner().RunWithCallback(context.Background(), "bubble", newGen(t, "bubble"),
		sortstep.Array{5, 1, 4, 2, 8}, func(step sortstep.Step, a sortstep.Array) bool {
			seen++
			return seen < 3
		})
	require.NoError(t, err)
	assert.Equal(t, 3, seen)
}
