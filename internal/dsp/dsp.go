// Package dsp implements the 8-voice DSP/voice engine: BRR sample
// decoding, Gaussian interpolation, ADSR/GAIN envelopes, and the
// per-sample mixer, per spec.md §4.6-§4.8. Grounded on
// _examples/original_source/src/dsp.c, translated from its static
// globals into a DSP struct so multiple instances can coexist (the
// teacher's packages, e.g. internal/apu, follow the same
// struct-over-globals shape).
package dsp

// Memory is the subset of the shared bus the DSP needs: raw ARAM
// reads, independent of the MMIO/overlay routing the CPU sees.
type Memory interface {
	Read(addr uint16) byte
	ReadWord(addr uint16) uint16
}

// DSP holds the 128-byte register file, the 8 voice states, and the
// counter/KON/KOFF edge-latch machinery.
type DSP struct {
	mem Memory

	regs   [RegsSize]byte
	voices [Channels]voiceState

	counters counters

	kon, koff byte
	toggle    bool
}

// New creates a DSP bound to mem.
func New(mem Memory) *DSP {
	d := &DSP{mem: mem}
	d.Reset()
	return d
}

// Reset zeros the register file and voice states and reinitializes the
// counter network, per dsp.c's dsp_reset/init.
func (d *DSP) Reset() {
	d.regs = [RegsSize]byte{}
	d.voices = [Channels]voiceState{}
	d.counters = newCounters()
	d.kon, d.koff = 0, 0
	d.toggle = false
}

// Restore installs a saved 128-byte register image without touching
// voice run state, per dsp.c's dsp_restore.
func (d *DSP) Restore(saved [RegsSize]byte) {
	d.regs = saved
	d.counters = newCounters()
}

// Regs returns a copy of the register file, for snapshot export.
func (d *DSP) Regs() [RegsSize]byte {
	return d.regs
}

// Store writes a DSP register. Addr bit 7 is masked off per dsp.c's
// _dsp_store; writes to ENDX always clear it regardless of the byte
// written.
func (d *DSP) Store(addr, v byte) {
	addr &= 0x7F
	if addr == regENDX {
		d.regs[regENDX] = 0
		return
	}
	d.regs[addr] = v
}

// Load reads a DSP register. Addr bit 7 is masked off per dsp.c's
// _dsp_load.
func (d *DSP) Load(addr byte) byte {
	return d.regs[addr&0x7F]
}

// Sample is one stereo output frame.
type Sample struct {
	Left, Right int16
}

// RunSample advances the DSP by one 32-sub-cycle sample tick: polls
// KON/KOFF every other call, runs the counter network, runs every
// voice, and mixes the result. Grounded on dsp.c's next_sample.
func (d *DSP) RunSample() Sample {
	d.toggle = !d.toggle
	if !d.toggle {
		d.kon = d.regs[regKON] &^ d.kon
		d.koff = d.regs[regKOFF]
	}

	d.counters.run()

	var mix stereoSample
	for i := 0; i < Channels; i++ {
		d.voiceRun(i)
		mix = sampleBlend(mix, d.voiceSample(i))
	}

	return Sample{Left: mix.left, Right: mix.right}
}
