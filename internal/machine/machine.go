// Package machine wires the CPU, DSP, ACR, ARAM, and clock driver
// together into the end-to-end audio coprocessor, and loads .spc
// snapshots into that wiring. Grounded on
// _examples/original_source/src/main.c's handle_file/setup_spc700
// flow (load -> convert_regs -> spc700_restore -> apu_restore ->
// dsp_restore -> run_forever) and on the teacher's internal/emu.Machine
// shape (a single struct gluing the subsystems together behind a small
// Run-style API).
package machine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/giannitedesco/spu-kit/internal/acr"
	"github.com/giannitedesco/spu-kit/internal/aram"
	"github.com/giannitedesco/spu-kit/internal/bus"
	"github.com/giannitedesco/spu-kit/internal/clock"
	"github.com/giannitedesco/spu-kit/internal/cpu"
	"github.com/giannitedesco/spu-kit/internal/dsp"
	"github.com/giannitedesco/spu-kit/internal/snapshot"
)

// apuMMIOBase is the address in the ARAM image that mirrors the ACR's
// 16-byte register window, per src/apu.h's APU_MMIO_BASE. A .spc
// snapshot carries no separate ACR blob: apu_state_from_aram recovers
// timer/IO state by reading it straight out of the frozen ARAM image.
const apuMMIOBase = 0x00F0

// Sink receives every stereo sample the DSP produces.
type Sink interface {
	Write(sample dsp.Sample)
}

// Machine couples every audio-coprocessor subsystem into one runnable
// unit.
type Machine struct {
	aram *aram.ARAM
	acr  *acr.ACR
	bus  *bus.Bus
	cpu  *cpu.CPU
	dsp  *dsp.DSP
	drv  *clock.Driver

	log *log.Logger
}

// New builds a Machine using the given boot-ROM overlay policy. iplROM
// is the 64-byte IPL boot ROM image mapped at 0xFFC0; logger may be nil.
func New(policy aram.Policy, iplROM [aram.OverlaySize]byte, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Default()
	}

	ar := aram.New(policy)
	ar.LoadROM(iplROM)

	d := dsp.New(ar)
	a := acr.New(d, ar, logger)
	b := bus.New(ar, a)
	c := cpu.New(b)

	m := &Machine{aram: ar, acr: a, bus: b, cpu: c, dsp: d, log: logger}
	m.drv = clock.New(c, a, d, nil)
	return m
}

// SetSink installs (or clears, with nil) the destination for decoded
// stereo samples.
func (m *Machine) SetSink(sink Sink) {
	m.drv = clock.New(m.cpu, m.acr, m.dsp, sink)
}

// Reset puts the ACR (re-enabling the boot-ROM overlay) and the CPU
// into their power-on state and points the CPU at the boot-ROM reset
// vector. ARAM contents and DSP state are left unchanged.
func (m *Machine) Reset() {
	m.acr.Reset()
	m.cpu.Reset()
}

// LoadSnapshot decodes an .spc blob and installs its CPU registers,
// ARAM image, DSP registers, and extra-RAM shadow, mirroring
// setup_spc700's restore sequence.
func (m *Machine) LoadSnapshot(raw []byte) (*snapshot.Snapshot, error) {
	snap, err := snapshot.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("machine: decode snapshot: %w", err)
	}

	m.aram.LoadImage(snap.ARAM)
	// snap.ExtraRAM is not installed under either overlay policy:
	// ARAM at 0xFFC0-0xFFFF is taken from the snapshot's ARAM image.
	// Under aram.PolicyAccurate the overlay is a pure read override,
	// so that range keeps the image's bytes while the ROM is shown.

	m.dsp.Restore(snap.DSPRegs)

	var mmio [16]byte
	copy(mmio[:], snap.ARAM[apuMMIOBase:apuMMIOBase+16])
	m.acr.Restore(mmio)

	m.cpu.Restore(snap.Regs)

	m.log.Info("loaded snapshot", "song", snap.ID666.SongTitle, "game", snap.ID666.GameTitle)

	return snap, nil
}

// Step executes one CPU instruction and its associated timer/DSP
// ticks, returning the sub-cycle count consumed (0 once halted).
func (m *Machine) Step() int {
	return m.drv.Step()
}

// Run drives the machine until the CPU halts, returning the total
// sub-cycle count consumed.
func (m *Machine) Run() uint64 {
	return m.drv.Run()
}

// RunSamples drives the machine until the CPU halts or maxSamples DSP
// samples have been produced (0 disables the limit).
func (m *Machine) RunSamples(maxSamples uint64) uint64 {
	return m.drv.RunSamples(maxSamples)
}

// Halted reports whether the CPU has stopped executing.
func (m *Machine) Halted() bool {
	return m.cpu.Halted()
}
