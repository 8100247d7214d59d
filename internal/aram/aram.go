// Package aram implements the 64 KiB flat audio memory shared by the
// SPC700 CPU and the DSP, plus the boot-ROM overlay mapped at 0xFFC0.
package aram

// Size is the address space of the audio coprocessor.
const Size = 0x10000

// OverlayBase and OverlaySize bound the 64-byte IPL ROM window.
const (
	OverlayBase = 0xFFC0
	OverlaySize = 0x40
)

// Policy selects how the boot-ROM overlay is implemented. Both must
// produce identical behaviour for the reset-handshake path; see
// SPEC_FULL.md §4.3/§9.
type Policy int

const (
	// PolicyAccurate treats the overlay as a read-override: ARAM at
	// 0xFFC0..0xFFFF is untouched, reads see the ROM while enabled.
	PolicyAccurate Policy = iota
	// PolicyNaive copies ARAM out to a shadow buffer on enable and
	// restores it on disable, mutating ARAM content directly.
	PolicyNaive
)

// ARAM is the 64 KiB flat memory array plus boot-ROM overlay state.
type ARAM struct {
	mem    [Size]byte
	rom    [OverlaySize]byte
	shadow [OverlaySize]byte

	policy      Policy
	overlayOn   bool
	haveShadow  bool
	haveROM     bool
}

// New creates an ARAM using the given overlay policy.
func New(policy Policy) *ARAM {
	return &ARAM{policy: policy}
}

// LoadROM installs the 64-byte IPL ROM image.
func (a *ARAM) LoadROM(rom [OverlaySize]byte) {
	a.rom = rom
	a.haveROM = true
}

// Read returns the raw ARAM byte at addr, ignoring the overlay. Callers
// that need overlay-aware semantics should use Bus.Read.
func (a *ARAM) Read(addr uint16) byte {
	return a.mem[addr]
}

// Write always stores through to ARAM, per spec.md §4.2 ("writes always
// update ARAM, even for MMIO").
func (a *ARAM) Write(addr uint16, b byte) {
	a.mem[addr] = b
}

// ROMByte returns the IPL ROM byte mapped at addr (addr must be within
// the overlay window).
func (a *ARAM) ROMByte(addr uint16) byte {
	return a.rom[addr-OverlayBase]
}

// OverlayActive reports whether a read at addr should be served from the
// ROM rather than ARAM under the accurate policy.
func (a *ARAM) OverlayActive(addr uint16) bool {
	return a.policy == PolicyAccurate && a.overlayOn &&
		addr >= OverlayBase && addr <= 0xFFFF
}

// SetOverlayEnabled implements the CTRL.bit7 transition for both
// policies.
func (a *ARAM) SetOverlayEnabled(enabled bool) {
	switch a.policy {
	case PolicyAccurate:
		a.overlayOn = enabled
	case PolicyNaive:
		if enabled && !a.overlayOn {
			copy(a.shadow[:], a.mem[OverlayBase:OverlayBase+OverlaySize])
			copy(a.mem[OverlayBase:OverlayBase+OverlaySize], a.rom[:])
			a.haveShadow = true
		} else if !enabled && a.overlayOn && a.haveShadow {
			copy(a.mem[OverlayBase:OverlayBase+OverlaySize], a.shadow[:])
		}
		a.overlayOn = enabled
	}
}

// OverlayEnabled reports the last value written to CTRL.bit7.
func (a *ARAM) OverlayEnabled() bool {
	return a.overlayOn
}

// LoadImage installs a full 64 KiB ARAM image, e.g. from a decoded
// snapshot.
func (a *ARAM) LoadImage(img [Size]byte) {
	a.mem = img
}

// Image returns a copy of the current ARAM contents.
func (a *ARAM) Image() [Size]byte {
	return a.mem
}

// ReadWord reads a little-endian 16-bit word directly out of ARAM,
// bypassing the boot-ROM overlay: the DSP's BRR/directory reads are
// raw memory accesses, not CPU-visible loads.
func (a *ARAM) ReadWord(addr uint16) uint16 {
	lo := a.mem[addr]
	hi := a.mem[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}
