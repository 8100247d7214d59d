// Package clock implements the cooperative single-threaded interleaving
// of CPU instruction execution, ACR timer ticks, and DSP sample runs,
// per spec.md §4.9. Grounded on
// _examples/original_source/src/apu.c's _apu_update_clocks: T2 ticks
// every 16 sub-cycles, the DSP runs a sample every 32, and T0/T1 tick
// every 128.
package clock

import "github.com/giannitedesco/spu-kit/internal/dsp"

// CPU is the subset of *cpu.CPU the driver needs.
type CPU interface {
	Step() int
	Halted() bool
}

// Timers is the subset of *acr.ACR the driver needs.
type Timers interface {
	TickT2()
	TickT01()
}

// DSP is the subset of *dsp.DSP the driver needs.
type DSP interface {
	RunSample() dsp.Sample
}

// Sink receives each stereo sample the DSP produces.
type Sink interface {
	Write(sample dsp.Sample)
}

// Driver runs the cooperative clock loop.
type Driver struct {
	cpu    CPU
	timers Timers
	dsp    DSP
	sink   Sink

	cycle   uint
	samples uint64
}

// New builds a Driver over the given collaborators.
func New(cpu CPU, timers Timers, dsp DSP, sink Sink) *Driver {
	return &Driver{cpu: cpu, timers: timers, dsp: dsp, sink: sink}
}

// Step executes exactly one CPU instruction and interleaves the
// timer/DSP clocks over the sub-cycles it consumed, returning the
// sub-cycle count (0 once the CPU has halted).
func (d *Driver) Step() int {
	if d.cpu.Halted() {
		return 0
	}

	subCycles := d.cpu.Step()
	for i := 0; i < subCycles; i++ {
		d.tick()
	}
	return subCycles
}

// tick advances the shared sub-cycle counter by one and fires the
// timer/DSP clocks at their documented cadences.
func (d *Driver) tick() {
	d.cycle++

	if d.cycle&0xF != 0 {
		return
	}

	d.timers.TickT2()

	if d.cycle&0x1F == 0 {
		sample := d.dsp.RunSample()
		d.samples++
		if d.sink != nil {
			d.sink.Write(sample)
		}
	}

	if d.cycle&0x7F == 0 {
		d.timers.TickT01()
	}
}

// Run steps the CPU until it halts, returning the total sub-cycle
// count consumed.
func (d *Driver) Run() uint64 {
	return d.RunSamples(0)
}

// RunSamples steps the CPU until it halts or maxSamples DSP samples
// have been produced (0 disables the limit), returning the total
// sub-cycle count consumed.
func (d *Driver) RunSamples(maxSamples uint64) uint64 {
	var total uint64
	for !d.cpu.Halted() {
		if maxSamples != 0 && d.samples >= maxSamples {
			break
		}
		total += uint64(d.Step())
	}
	return total
}
