package clock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giannitedesco/spu-kit/internal/dsp"
)

type fakeCPU struct {
	steps  int
	halted bool
}

func (f *fakeCPU) Step() int {
	f.steps++
	if f.steps >= 4 {
		f.halted = true
	}
	return 32
}
func (f *fakeCPU) Halted() bool { return f.halted }

type fakeTimers struct {
	t2, t01 int
}

func (f *fakeTimers) TickT2()  { f.t2++ }
func (f *fakeTimers) TickT01() { f.t01++ }

type fakeDSP struct {
	runs int
}

func (f *fakeDSP) RunSample() dsp.Sample {
	f.runs++
	return dsp.Sample{}
}

type fakeSink struct {
	samples int
}

func (f *fakeSink) Write(dsp.Sample) { f.samples++ }

func TestDriver_CadenceMatchesReference(t *testing.T) {
	cpu := &fakeCPU{}
	timers := &fakeTimers{}
	d := &fakeDSP{}
	sink := &fakeSink{}
	drv := New(cpu, timers, d, sink)

	total := drv.Run()

	require.Equal(t, uint64(4*32), total)
	// T2 ticks every 16 sub-cycles: 128/16 = 8.
	require.Equal(t, 8, timers.t2)
	// DSP runs every 32 sub-cycles: 128/32 = 4.
	require.Equal(t, 4, d.runs)
	require.Equal(t, 4, sink.samples)
	// T0/T1 tick every 128 sub-cycles: 128/128 = 1.
	require.Equal(t, 1, timers.t01)
}

func TestDriver_StopsAfterHalt(t *testing.T) {
	cpu := &fakeCPU{halted: true}
	drv := New(cpu, &fakeTimers{}, &fakeDSP{}, nil)
	require.Equal(t, 0, drv.Step())
}

func TestDriver_RunSamplesStopsAtLimit(t *testing.T) {
	cpu := &fakeCPU{}
	d := &fakeDSP{}
	sink := &fakeSink{}
	drv := New(cpu, &fakeTimers{}, d, sink)

	// Each fakeCPU.Step consumes 32 sub-cycles == exactly one DSP
	// sample; halting is set only after 4 steps, well past the limit.
	drv.RunSamples(2)

	require.Equal(t, 2, d.runs)
	require.Equal(t, 2, sink.samples)
}
