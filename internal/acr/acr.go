// Package acr implements the 16-byte audio-control-register MMIO window
// (spec.md §3/§4.4) and the three hardware timers it exposes (§4.5).
package acr

import "github.com/charmbracelet/log"

// Register offsets within the 16-byte MMIO window at 0x00F0.
const (
	Test    = 0x0
	Ctrl    = 0x1
	DSPAddr = 0x2
	DSPData = 0x3
	IO0     = 0x4
	IO1     = 0x5
	IO2     = 0x6
	IO3     = 0x7
	Aux0    = 0x8
	Aux1    = 0x9
	T0Div   = 0xA
	T1Div   = 0xB
	T2Div   = 0xC
	T0Out   = 0xD
	T1Out   = 0xE
	T2Out   = 0xF
)

// CTRL bit masks, grounded on include/spu-kit/apu.h.
const (
	CtrlT0       = 1 << 0
	CtrlT1       = 1 << 1
	CtrlT2       = 1 << 2
	CtrlIOC01    = 1 << 4
	CtrlIOC23    = 1 << 5
	CtrlBootROM  = 1 << 7
)

// Base is the address the 16-byte window starts at.
const Base = 0x00F0

// DSP is the subset of the DSP register file the ACR proxies DSP_ADDR
// / DSP_DATA loads and stores onto.
type DSP interface {
	Load(addr byte) byte
	Store(addr byte, v byte)
}

// Overlay receives boot-ROM visibility transitions driven by CTRL.bit7.
type Overlay interface {
	SetOverlayEnabled(enabled bool)
}

// ACR is the audio-control-register block: 16 raw bytes, three timers,
// and the DSP/overlay proxies they drive.
type ACR struct {
	regs   [16]byte
	timers [3]timer
	tout   [3]byte
	ioIn   [4]byte

	dsp     DSP
	overlay Overlay
	log     *log.Logger
}

// New builds an ACR wired to the given DSP register file and boot-ROM
// overlay.
func New(dsp DSP, overlay Overlay, logger *log.Logger) *ACR {
	if logger == nil {
		logger = log.Default()
	}
	return &ACR{dsp: dsp, overlay: overlay, log: logger}
}

// SetIOIn seeds one of the four input latches, simulating a handshake
// byte arriving from outside the coprocessor (e.g. during boot-ROM
// negotiation).
func (a *ACR) SetIOIn(idx int, v byte) {
	a.ioIn[idx] = v
}

// Load implements the ACR half of Bus.Read for addresses in [0xF0,0xFF].
func (a *ACR) Load(addr uint16) byte {
	reg := addr & 0xF
	switch reg {
	case DSPData:
		return a.dsp.Load(a.regs[DSPAddr])
	case IO0, IO1, IO2, IO3:
		return a.ioIn[reg-IO0]
	case T0Out, T1Out, T2Out:
		idx := reg - T0Out
		v := a.tout[idx]
		// Side-effecting read: TxOUT resets to zero once observed.
		a.tout[idx] = 0
		return v
	default:
		return a.regs[reg]
	}
}

// Store implements the ACR half of Bus.Write for addresses in
// [0xF0,0xFF].
func (a *ACR) Store(addr uint16, v byte) {
	reg := addr & 0xF
	a.regs[reg] = v

	switch reg {
	case Ctrl:
		a.ctrlStore(v)
	case DSPData:
		a.dsp.Store(a.regs[DSPAddr], v)
	case DSPAddr, Test, IO0, IO1, IO2, IO3, Aux0, Aux1, T0Div, T1Div, T2Div:
		// Inert until the corresponding enable edge (timers) or purely
		// informational (test/io/aux); the raw byte is already stored.
	}
}

func (a *ACR) ctrlStore(v byte) {
	a.applyTimerBit(0, CtrlT0, v)
	a.applyTimerBit(1, CtrlT1, v)
	a.applyTimerBit(2, CtrlT2, v)

	if v&CtrlIOC01 != 0 {
		a.ioIn[0] = 0
		a.ioIn[1] = 0
	}
	if v&CtrlIOC23 != 0 {
		a.ioIn[2] = 0
		a.ioIn[3] = 0
	}

	a.overlay.SetOverlayEnabled(v&CtrlBootROM != 0)
}

// applyTimerBit independently enables/disables timer i from CTRL bit
// `mask`. The reference's CTRL.T2 branch mistakenly re-initializes T1
// (src/apu.c); SPEC_FULL.md §9 flags this as a bug to fix, not
// reproduce, so each timer is handled on its own index here.
func (a *ACR) applyTimerBit(i int, mask byte, v byte) {
	if v&mask != 0 {
		if !a.timers[i].enabled {
			a.timers[i].enable(a.regs[T0Div+i])
			a.tout[i] = 0
		}
	} else {
		a.timers[i].disable()
	}
}

// TickT2 advances the 64 kHz timer by one edge.
func (a *ACR) TickT2() {
	if a.timers[2].tick() {
		a.tout[2] = (a.tout[2] + 1) & 0xF
	}
}

// TickT01 advances the two 8 kHz timers by one edge each.
func (a *ACR) TickT01() {
	if a.timers[0].tick() {
		a.tout[0] = (a.tout[0] + 1) & 0xF
	}
	if a.timers[1].tick() {
		a.tout[1] = (a.tout[1] + 1) & 0xF
	}
}

// Reset clears all ACR state, including timers and I/O latches.
func (a *ACR) Reset() {
	a.regs = [16]byte{}
	a.timers = [3]timer{}
	a.tout = [3]byte{}
	a.ioIn = [4]byte{}
	a.overlay.SetOverlayEnabled(true)
}

// Restore installs a previously-saved 16-byte ACR image (e.g. decoded
// from a snapshot) and re-derives timer/overlay state from it.
func (a *ACR) Restore(img [16]byte) {
	a.regs = img
	a.ctrlStore(img[Ctrl])
}
