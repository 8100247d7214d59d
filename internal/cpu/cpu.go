// Package cpu implements the SPC700 CPU interpreter: a cycle-driven,
// instruction-level emulator of the custom 8-bit processor at the heart
// of the audio coprocessor (spec.md §4.1). The dispatch table, ALU, and
// memory-access helpers are modeled on
// _examples/FabianRolfMatthiasNoll-GameBoyEmulator/internal/cpu/cpu.go's
// tuple-returning ALU helpers and switch-based opcode dispatch,
// generalized from the Game Boy's Sharp LR35902 to the SPC700.
package cpu

// Bus is the memory interface the CPU executes against.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, v uint16)
}

// Regs is the externally visible register file, used for
// restore/snapshot seeding.
type Regs struct {
	PC       uint16
	A, X, Y  byte
	PSW      byte
	SP       byte
}

// CPU is the SPC700 interpreter. One Step executes exactly one
// instruction and returns the constant 4 audio sub-cycles it consumed,
// per spec.md §4.1's "cycle-driven, constant 4-tick model".
type CPU struct {
	bus Bus

	pc      uint16
	a, x, y byte
	sp      byte
	flags   Flags

	// halted becomes true once an undefined opcode or explicit halt is
	// dispatched; Step keeps returning immediately afterwards so the
	// clock driver can detect termination.
	halted bool
}

// New creates a CPU bound to bus. Registers start zeroed; call Reset or
// Restore before running.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Halted reports whether the interpreter loop has stopped.
func (c *CPU) Halted() bool {
	return c.halted
}

// Regs returns the current register file.
func (c *CPU) Regs() Regs {
	return Regs{PC: c.pc, A: c.a, X: c.x, Y: c.y, PSW: c.PSW(), SP: c.sp}
}

// Reset loads PC from the reset vector at 0xFFFE and initializes
// SP=0xEF, flags=Z only, per spec.md §4.1.
func (c *CPU) Reset() {
	c.pc = c.bus.ReadWord(0xFFFE)
	c.sp = 0xEF
	c.flags = Flags{Z: true}
	c.halted = false
	c.a, c.x, c.y = 0, 0, 0
}

// Restore installs state without clearing, per spec.md §4.1.
func (c *CPU) Restore(r Regs) {
	c.pc = r.PC
	c.a = r.A
	c.x = r.X
	c.y = r.Y
	c.sp = r.SP
	c.SetPSW(r.PSW)
	c.halted = false
}

func (c *CPU) fetch8() byte {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) push8(v byte) {
	c.bus.Write(0x0100|uint16(c.sp), v)
	c.sp--
}

func (c *CPU) pop8() byte {
	c.sp++
	return c.bus.Read(0x0100 | uint16(c.sp))
}

func (c *CPU) push16(v uint16) {
	c.push8(byte(v >> 8))
	c.push8(byte(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop8()
	hi := c.pop8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) getYA() uint16 {
	return uint16(c.y)<<8 | uint16(c.a)
}

func (c *CPU) setYA(v uint16) {
	c.y = byte(v >> 8)
	c.a = byte(v)
}

// Step fetches and dispatches one instruction and returns the constant
// 4 sub-cycles it consumed. Once halted, Step is a no-op returning 0.
func (c *CPU) Step() int {
	if c.halted {
		return 0
	}

	op := c.fetch8()
	c.dispatch(op)
	return 4
}
