package cpu

// PSW bit positions, per spec.md §3: composing PSW uses bit positions
// {C=0, Z=1, I=2, H=3, B=4, P=5, V=6, N=7}.
const (
	flagC = 1 << 0
	flagZ = 1 << 1
	flagI = 1 << 2
	flagH = 1 << 3
	flagB = 1 << 4
	flagP = 1 << 5
	flagV = 1 << 6
	flagN = 1 << 7
)

// Flags is the decomposed processor status word.
type Flags struct {
	C, Z, I, H, B, P, V, N bool
}

func b2i(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// psw composes the 8 individual flags back into a PSW byte. Composing
// then decomposing (or vice versa) is the identity over the 8-bit PSW
// value (spec.md §8).
func (f Flags) psw() byte {
	return b2i(f.C)<<0 | b2i(f.Z)<<1 | b2i(f.I)<<2 | b2i(f.H)<<3 |
		b2i(f.B)<<4 | b2i(f.P)<<5 | b2i(f.V)<<6 | b2i(f.N)<<7
}

func decomposePSW(psw byte) Flags {
	return Flags{
		C: psw&flagC != 0,
		Z: psw&flagZ != 0,
		I: psw&flagI != 0,
		H: psw&flagH != 0,
		B: psw&flagB != 0,
		P: psw&flagP != 0,
		V: psw&flagV != 0,
		N: psw&flagN != 0,
	}
}

// PSW returns the current processor status word.
func (c *CPU) PSW() byte {
	return c.flags.psw()
}

// SetPSW installs a full processor status word, decomposing it into the
// individual flag bits.
func (c *CPU) SetPSW(psw byte) {
	c.flags = decomposePSW(psw)
}

func (c *CPU) setZN(v byte) {
	c.flags.Z = v == 0
	c.flags.N = v&0x80 != 0
}

func (c *CPU) setZN16(v uint16) {
	c.flags.Z = v == 0
	c.flags.N = v&0x8000 != 0
}
