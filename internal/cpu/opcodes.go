package cpu

// dispatch executes the instruction named by op. The opcode-to-handler
// wiring mirrors _examples/original_source/src/spc700.c's literal
// 256-entry table (roughly 220 implemented, the remainder left as
// "halt"/undefined, per spec.md §4.1). TCALL targets are derived
// structurally from the opcode's slot nibble rather than one
// hand-written body per slot, so the reference's copy-paste bug in
// insn_tcall_9 (SPEC_FULL.md §9) cannot reappear here.
func (c *CPU) dispatch(op byte) {
	// TCALL n: opcode (n<<4 | 0x01).
	if op&0x0F == 0x01 {
		c.tcall(op >> 4)
		return
	}

	// Literal direct-page bit ops: set_db/clr_db/bbs_db/bbc_db, bit
	// index packed into the opcode's top three bits.
	if low := op & 0x1F; low == 0x02 || low == 0x03 || low == 0x12 || low == 0x13 {
		c.literalBitOp(op)
		return
	}

	switch op {
	case 0x00: // NOP

	case 0x04:
		c.binToA(c.dp(), c.aluOR)
	case 0x05:
		c.binToA(c.absolute(), c.aluOR)
	case 0x06:
		c.binToA(c.indirectX(), c.aluOR)
	case 0x07:
		c.binToA(c.dpXIndirect(), c.aluOR)
	case 0x08:
		c.binToAImm(c.aluOR)
	case 0x09:
		c.binMemMem(c.dp(), c.dp(), c.aluOR)
	case 0x0A:
		ba := c.fetchBitAddr()
		c.flags.C = c.flags.C || c.bitLoad(ba)
	case 0x0B:
		c.rmw(c.dp(), c.aluASL)
	case 0x0C:
		c.rmw(c.absolute(), c.aluASL)
	case 0x0D:
		c.push8(c.PSW())
	case 0x0E:
		c.tset1(c.absolute())
	case 0x10:
		c.branchIf(!c.flags.N)
	case 0x14:
		c.binToA(c.dpX(), c.aluOR)
	case 0x15:
		c.binToA(c.absoluteX(), c.aluOR)
	case 0x16:
		c.binToA(c.absoluteY(), c.aluOR)
	case 0x17:
		c.binToA(c.dpIndirectY(), c.aluOR)
	case 0x18:
		c.binMemImm(c.dp(), c.aluOR)
	case 0x19:
		c.binMemMem(c.indirectX(), c.indirectY(), c.aluOR)
	case 0x1A:
		c.incwDecw(c.dp(), -1)
	case 0x1B:
		c.rmw(c.dpX(), c.aluASL)
	case 0x1C:
		c.a = c.aluASL(c.a)
	case 0x1D:
		c.x = c.aluDEC(c.x)
	case 0x1F:
		c.pc = c.absoluteXIndirect()

	case 0x20:
		c.flags.P = false
	case 0x24:
		c.binToA(c.dp(), c.aluAND)
	case 0x25:
		c.binToA(c.absolute(), c.aluAND)
	case 0x26:
		c.binToA(c.indirectX(), c.aluAND)
	case 0x27:
		c.binToA(c.dpXIndirect(), c.aluAND)
	case 0x28:
		c.binToAImm(c.aluAND)
	case 0x29:
		c.binMemMem(c.dp(), c.dp(), c.aluAND)
	case 0x2A:
		ba := c.fetchBitAddr()
		c.flags.C = c.flags.C || !c.bitLoad(ba)
	case 0x2B:
		c.rmw(c.dp(), c.aluROL)
	case 0x2C:
		c.rmw(c.absolute(), c.aluROL)
	case 0x2D:
		c.push8(c.a)
	case 0x2E:
		addr := c.dp()
		rel := c.relative()
		if c.a != c.bus.Read(addr) {
			c.branch(rel)
		}
	case 0x2F:
		c.branch(c.relative())

	case 0x30:
		c.branchIf(c.flags.N)
	case 0x34:
		c.binToA(c.dpX(), c.aluAND)
	case 0x35:
		c.binToA(c.absoluteX(), c.aluAND)
	case 0x36:
		c.binToA(c.absoluteY(), c.aluAND)
	case 0x37:
		c.binToA(c.dpIndirectY(), c.aluAND)
	case 0x38:
		c.binMemImm(c.dp(), c.aluAND)
	case 0x39:
		c.binMemMem(c.indirectX(), c.indirectY(), c.aluAND)
	case 0x3A:
		c.incwDecw(c.dp(), +1)
	case 0x3B:
		c.rmw(c.dpX(), c.aluROL)
	case 0x3C:
		c.a = c.aluROL(c.a)
	case 0x3D:
		c.x = c.aluINC(c.x)
	case 0x3F:
		addr := c.absolute()
		c.push16(c.pc)
		c.pc = addr

	case 0x40:
		c.flags.P = true
	case 0x44:
		c.binToA(c.dp(), c.aluEOR)
	case 0x45:
		c.binToA(c.absolute(), c.aluEOR)
	case 0x46:
		c.binToA(c.indirectX(), c.aluEOR)
	case 0x47:
		c.binToA(c.dpXIndirect(), c.aluEOR)
	case 0x48:
		c.binToAImm(c.aluEOR)
	case 0x49:
		c.binMemMem(c.dp(), c.dp(), c.aluEOR)
	case 0x4A:
		ba := c.fetchBitAddr()
		c.flags.C = c.flags.C && c.bitLoad(ba)
	case 0x4B:
		c.rmw(c.dp(), c.aluLSR)
	case 0x4C:
		c.rmw(c.absolute(), c.aluLSR)
	case 0x4D:
		c.push8(c.x)
	case 0x4E:
		c.tclr1(c.absolute())

	case 0x54:
		c.binToA(c.dpX(), c.aluEOR)
	case 0x55:
		c.binToA(c.absoluteX(), c.aluEOR)
	case 0x56:
		c.binToA(c.absoluteY(), c.aluEOR)
	case 0x57:
		c.binToA(c.dpIndirectY(), c.aluEOR)
	case 0x58:
		c.binMemImm(c.dp(), c.aluEOR)
	case 0x59:
		c.binMemMem(c.indirectX(), c.indirectY(), c.aluEOR)
	case 0x5A:
		c.cmpw(c.dp())
	case 0x5B:
		c.rmw(c.dpX(), c.aluLSR)
	case 0x5C:
		c.a = c.aluLSR(c.a)
	case 0x5D:
		c.x = c.a
		c.setZN(c.x)
	case 0x5F:
		c.pc = c.absolute()

	case 0x60:
		c.flags.C = false
	case 0x64:
		c.binToA(c.dp(), aluCmpOp(c))
	case 0x65:
		c.binToA(c.absolute(), aluCmpOp(c))
	case 0x66:
		c.binToA(c.indirectX(), aluCmpOp(c))
	case 0x67:
		c.binToA(c.dpXIndirect(), aluCmpOp(c))
	case 0x68:
		c.binToAImm(aluCmpOp(c))
	case 0x69:
		c.cmpMemMem(c.dp(), c.dp())
	case 0x6A:
		ba := c.fetchBitAddr()
		c.flags.C = c.flags.C && !c.bitLoad(ba)
	case 0x6B:
		c.rmw(c.dp(), c.aluROR)
	case 0x6C:
		c.rmw(c.absolute(), c.aluROR)
	case 0x6D:
		c.push8(c.y)
	case 0x6E:
		addr := c.dp()
		rel := c.relative()
		v := c.bus.Read(addr) - 1
		c.bus.Write(addr, v)
		if v != 0 {
			c.branch(rel)
		}
	case 0x6F:
		c.pc = c.pop16()

	case 0x74:
		c.binToA(c.dpX(), aluCmpOp(c))
	case 0x75:
		c.binToA(c.absoluteX(), aluCmpOp(c))
	case 0x76:
		c.binToA(c.absoluteY(), aluCmpOp(c))
	case 0x77:
		c.binToA(c.dpIndirectY(), aluCmpOp(c))
	case 0x78:
		c.cmpMemImm(c.dp())
	case 0x79:
		c.cmpMemMem(c.indirectX(), c.indirectY())
	case 0x7A:
		addr := c.dp()
		v := c.bus.ReadWord(addr)
		c.setYA(c.aluADDW(c.getYA(), v))
	case 0x7B:
		c.rmw(c.dpX(), c.aluROR)
	case 0x7C:
		c.a = c.aluROR(c.a)
	case 0x7D:
		c.a = c.x
		c.setZN(c.a)
	case 0x7E:
		addr := c.dp()
		c.aluCMP(c.y, c.bus.Read(addr))

	case 0x80:
		c.flags.C = true
	case 0x84:
		c.binToA(c.dp(), c.aluADC)
	case 0x85:
		c.binToA(c.absolute(), c.aluADC)
	case 0x86:
		c.binToA(c.indirectX(), c.aluADC)
	case 0x87:
		c.binToA(c.dpXIndirect(), c.aluADC)
	case 0x88:
		c.binToAImm(c.aluADC)
	case 0x89:
		c.binMemMem(c.dp(), c.dp(), c.aluADC)
	case 0x8A:
		ba := c.fetchBitAddr()
		c.flags.C = c.flags.C != c.bitLoad(ba)
	case 0x8B:
		c.rmw(c.dp(), c.aluDEC)
	case 0x8C:
		c.rmw(c.absolute(), c.aluDEC)
	case 0x8D:
		c.y = c.fetch8()
		c.setZN(c.y)
	case 0x8E:
		c.SetPSW(c.pop8())
	case 0x8F:
		addr := c.dp()
		c.bus.Write(addr, c.fetch8())

	case 0x90:
		c.branchIf(!c.flags.C)
	case 0x94:
		c.binToA(c.dpX(), c.aluADC)
	case 0x95:
		c.binToA(c.absoluteX(), c.aluADC)
	case 0x96:
		c.binToA(c.absoluteY(), c.aluADC)
	case 0x97:
		c.binToA(c.dpIndirectY(), c.aluADC)
	case 0x98:
		c.binMemImm(c.dp(), c.aluADC)
	case 0x99:
		c.binMemMem(c.indirectX(), c.indirectY(), c.aluADC)
	case 0x9A:
		addr := c.dp()
		v := c.bus.ReadWord(addr)
		c.setYA(c.aluSUBW(c.getYA(), v))
	case 0x9B:
		c.rmw(c.dpX(), c.aluDEC)
	case 0x9C:
		c.a = c.aluDEC(c.a)
	case 0x9E:
		q, r := c.aluDIVW(c.getYA(), c.x)
		c.a, c.y = q, r
	case 0x9F:
		c.a = (c.a << 4) | (c.a >> 4)
		c.setZN(c.a)

	case 0xA0:
		c.flags.I = true
	case 0xA4:
		c.binToA(c.dp(), c.aluSBC)
	case 0xA5:
		c.binToA(c.absolute(), c.aluSBC)
	case 0xA6:
		c.binToA(c.indirectX(), c.aluSBC)
	case 0xA7:
		c.binToA(c.dpXIndirect(), c.aluSBC)
	case 0xA8:
		c.binToAImm(c.aluSBC)
	case 0xA9:
		c.binMemMem(c.dp(), c.dp(), c.aluSBC)
	case 0xAA:
		ba := c.fetchBitAddr()
		c.flags.C = c.bitLoad(ba)
	case 0xAB:
		c.rmw(c.dp(), c.aluINC)
	case 0xAC:
		c.rmw(c.absolute(), c.aluINC)
	case 0xAD:
		val := c.fetch8()
		c.aluCMP(c.y, val)
	case 0xAE:
		c.a = c.pop8()

	case 0xB0:
		c.branchIf(c.flags.C)
	case 0xB4:
		c.binToA(c.dpX(), c.aluSBC)
	case 0xB5:
		c.binToA(c.absoluteX(), c.aluSBC)
	case 0xB6:
		c.binToA(c.absoluteY(), c.aluSBC)
	case 0xB7:
		c.binToA(c.dpIndirectY(), c.aluSBC)
	case 0xB8:
		c.binMemImm(c.dp(), c.aluSBC)
	case 0xB9:
		c.binMemMem(c.indirectX(), c.indirectY(), c.aluSBC)
	case 0xBA:
		addr := c.dp()
		v := c.bus.ReadWord(addr)
		c.setYA(v)
		c.setZN16(v)
	case 0xBB:
		c.rmw(c.dpX(), c.aluINC)
	case 0xBC:
		c.a = c.aluINC(c.a)
	case 0xCF:
		c.setYA(c.aluMUL(c.a, c.y))

	case 0xC0:
		c.flags.I = false
	case 0xC4:
		addr := c.dp()
		c.bus.Write(addr, c.a)
	case 0xC5:
		c.bus.Write(c.absolute(), c.a)
	case 0xC6:
		c.bus.Write(c.indirectX(), c.a)
	case 0xC7:
		c.bus.Write(c.dpXIndirect(), c.a)
	case 0xC8:
		val := c.fetch8()
		c.aluCMP(c.x, val)
	case 0xC9:
		c.bus.Write(c.absolute(), c.x)
	case 0xCA:
		ba := c.fetchBitAddr()
		c.bitStore(ba, c.flags.C)
	case 0xCB:
		c.bus.Write(c.dp(), c.y)
	case 0xCC:
		c.bus.Write(c.absolute(), c.y)
	case 0xCD:
		c.x = c.fetch8()
		c.setZN(c.x)
	case 0xCE:
		c.x = c.pop8()

	case 0xD0:
		c.branchIf(!c.flags.Z)
	case 0xD4:
		c.bus.Write(c.dpX(), c.a)
	case 0xD5:
		c.bus.Write(c.absoluteX(), c.a)
	case 0xD6:
		c.bus.Write(c.absoluteY(), c.a)
	case 0xD7:
		c.bus.Write(c.dpIndirectY(), c.a)
	case 0xD8:
		c.bus.Write(c.dp(), c.x)
	case 0xDA:
		c.bus.WriteWord(c.dp(), c.getYA())
	case 0xDB:
		c.bus.Write(c.dpX(), c.y)
	case 0xDC:
		c.y = c.aluDEC(c.y)
	case 0xDD:
		c.a = c.y
		c.setZN(c.a)
	case 0xDE:
		addr := c.dpX()
		rel := c.relative()
		if c.a != c.bus.Read(addr) {
			c.branch(rel)
		}

	case 0xE0:
		c.flags.V = false
		c.flags.H = false
	case 0xE4:
		c.a = c.bus.Read(c.dp())
		c.setZN(c.a)
	case 0xE5:
		c.a = c.bus.Read(c.absolute())
		c.setZN(c.a)
	case 0xE6:
		c.a = c.bus.Read(c.indirectX())
		c.setZN(c.a)
	case 0xE7:
		c.a = c.bus.Read(c.dpXIndirect())
		c.setZN(c.a)
	case 0xE8:
		c.a = c.fetch8()
		c.setZN(c.a)
	case 0xE9:
		c.x = c.bus.Read(c.absolute())
		c.setZN(c.x)
	case 0xEA:
		ba := c.fetchBitAddr()
		c.bitStore(ba, !c.bitLoad(ba))
	case 0xEB:
		c.y = c.bus.Read(c.dp())
		c.setZN(c.y)
	case 0xEC:
		c.y = c.bus.Read(c.absolute())
		c.setZN(c.y)
	case 0xED:
		c.flags.C = !c.flags.C
	case 0xEE:
		c.y = c.pop8()

	case 0xF0:
		c.branchIf(c.flags.Z)
	case 0xF4:
		c.a = c.bus.Read(c.dpX())
		c.setZN(c.a)
	case 0xF5:
		c.a = c.bus.Read(c.absoluteX())
		c.setZN(c.a)
	case 0xF6:
		c.a = c.bus.Read(c.absoluteY())
		c.setZN(c.a)
	case 0xF7:
		c.a = c.bus.Read(c.dpIndirectY())
		c.setZN(c.a)
	case 0xF8:
		c.x = c.bus.Read(c.dp())
		c.setZN(c.x)
	case 0xFA:
		dest := c.dp()
		src := c.dp()
		c.bus.Write(dest, c.bus.Read(src))
	case 0xFB:
		c.y = c.bus.Read(c.dpX())
		c.setZN(c.y)
	case 0xFC:
		c.y = c.aluINC(c.y)
	case 0xFD:
		c.y = c.a
		c.setZN(c.y)
	case 0xFE:
		rel := c.relative()
		c.y--
		if c.y != 0 {
			c.branch(rel)
		}

	default:
		// Undefined opcode: halt the run loop, per spec.md §4.1.
		c.halted = true
	}
}

func (c *CPU) branch(disp int8) {
	c.pc = uint16(int32(c.pc) + int32(disp))
}

func (c *CPU) branchIf(taken bool) {
	rel := c.relative()
	if taken {
		c.branch(rel)
	}
}

// tcall computes tbl_addr = 0xFFC0 + ((0xF - (n & 0xF)) << 1), loads the
// jump target, and pushes the return PC, per spec.md §4.1.
func (c *CPU) tcall(n byte) {
	tblAddr := uint16(0xFFC0) + uint16(0xF-(n&0xF))<<1
	target := c.bus.ReadWord(tblAddr)
	c.push16(c.pc)
	c.pc = target
}

// literalBitOp handles the db-family instructions (set_db/clr_db/
// bbs_db/bbc_db): the bit index is packed into the opcode's top three
// bits (op>>5), per _examples/original_source/src/spc700.c's opcode table.
func (c *CPU) literalBitOp(op byte) {
	bit := (op >> 5) & 0x7
	switch op & 0x1F {
	case 0x02: // set_db
		addr := c.dp()
		c.bus.Write(addr, c.bus.Read(addr)|(1<<bit))
	case 0x12: // clr_db
		addr := c.dp()
		c.bus.Write(addr, c.bus.Read(addr)&^(1<<bit))
	case 0x03: // bbs_db
		addr := c.dp()
		rel := c.relative()
		if c.bus.Read(addr)&(1<<bit) != 0 {
			c.branch(rel)
		}
	case 0x13: // bbc_db
		addr := c.dp()
		rel := c.relative()
		if c.bus.Read(addr)&(1<<bit) == 0 {
			c.branch(rel)
		}
	}
}

func (c *CPU) tset1(addr uint16) {
	mem := c.bus.Read(addr)
	out := mem | c.a
	c.setZN(c.a - mem)
	c.bus.Write(addr, out)
}

func (c *CPU) tclr1(addr uint16) {
	mem := c.bus.Read(addr)
	out := mem &^ c.a
	c.setZN(c.a - mem)
	c.bus.Write(addr, out)
}

func (c *CPU) incwDecw(addr uint16, delta int) {
	v := c.bus.ReadWord(addr)
	if delta > 0 {
		v++
	} else {
		v--
	}
	c.bus.WriteWord(addr, v)
	c.setZN16(v)
}

func (c *CPU) cmpw(addr uint16) {
	v := c.bus.ReadWord(addr)
	ya := c.getYA()
	cmp := int32(ya) - int32(v)
	c.flags.C = ya >= v
	c.setZN16(uint16(cmp))
}

// binToA computes A := op(A, mem[addr]).
func (c *CPU) binToA(addr uint16, op func(byte, byte) byte) {
	c.a = op(c.a, c.bus.Read(addr))
}

// binToAImm computes A := op(A, #imm).
func (c *CPU) binToAImm(op func(byte, byte) byte) {
	val := c.fetch8()
	c.a = op(c.a, val)
}

// binMemMem computes mem[dest] := op(mem[dest], mem[src]).
func (c *CPU) binMemMem(dest, src uint16, op func(byte, byte) byte) {
	c.bus.Write(dest, op(c.bus.Read(dest), c.bus.Read(src)))
}

// binMemImm computes mem[dest] := op(mem[dest], #imm).
func (c *CPU) binMemImm(dest uint16, op func(byte, byte) byte) {
	val := c.fetch8()
	c.bus.Write(dest, op(c.bus.Read(dest), val))
}

// rmw computes mem[addr] := op(mem[addr]) for the shift/rotate/inc/dec
// family.
func (c *CPU) rmw(addr uint16, op func(byte) byte) {
	c.bus.Write(addr, op(c.bus.Read(addr)))
}

// aluCmpOp adapts aluCMP (which has no return value) to the
// func(byte,byte) byte shape binToA/binMemMem expect, returning the
// unmodified first operand since CMP never writes back.
func aluCmpOp(c *CPU) func(byte, byte) byte {
	return func(a, b byte) byte {
		c.aluCMP(a, b)
		return a
	}
}

func (c *CPU) cmpMemMem(dest, src uint16) {
	c.aluCMP(c.bus.Read(dest), c.bus.Read(src))
}

func (c *CPU) cmpMemImm(dest uint16) {
	val := c.fetch8()
	c.aluCMP(c.bus.Read(dest), val)
}
