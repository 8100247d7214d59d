package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAram struct {
	mem         [0x10000]byte
	rom         [0x40]byte
	overlayOn   bool
}

func (a *fakeAram) Read(addr uint16) byte  { return a.mem[addr] }
func (a *fakeAram) Write(addr uint16, v byte) { a.mem[addr] = v }
func (a *fakeAram) OverlayActive(addr uint16) bool {
	return a.overlayOn && addr >= 0xFFC0
}
func (a *fakeAram) ROMByte(addr uint16) byte { return a.rom[addr-0xFFC0] }

type fakeAcr struct {
	loads, stores int
	last          byte
}

func (a *fakeAcr) Load(addr uint16) byte { a.loads++; return 0x5A }
func (a *fakeAcr) Store(addr uint16, v byte) {
	a.stores++
	a.last = v
}

func TestBus_MMIORoutesToAcr(t *testing.T) {
	ar := &fakeAram{}
	ac := &fakeAcr{}
	b := New(ar, ac)

	require.Equal(t, byte(0x5A), b.Read(0x00F0))
	require.Equal(t, 1, ac.loads)

	b.Write(0x00F5, 0x42)
	require.Equal(t, 1, ac.stores)
	require.Equal(t, byte(0x42), ac.last)
	require.Equal(t, byte(0x42), ar.mem[0x00F5]) // writes always store through to ARAM too
}

func TestBus_OverlayOverridesReadOutsideMMIO(t *testing.T) {
	ar := &fakeAram{overlayOn: true}
	ar.rom[0] = 0x99
	ar.mem[0xFFC0] = 0x11
	ac := &fakeAcr{}
	b := New(ar, ac)

	require.Equal(t, byte(0x99), b.Read(0xFFC0))
}

func TestBus_PlainReadOutsideMMIOAndOverlay(t *testing.T) {
	ar := &fakeAram{}
	ar.mem[0x1234] = 0x77
	b := New(ar, &fakeAcr{})

	require.Equal(t, byte(0x77), b.Read(0x1234))
}

func TestBus_ReadWriteWord(t *testing.T) {
	ar := &fakeAram{}
	b := New(ar, &fakeAcr{})

	b.WriteWord(0x10, 0x1234)
	require.Equal(t, uint16(0x1234), b.ReadWord(0x10))
	require.Equal(t, byte(0x34), ar.mem[0x10])
	require.Equal(t, byte(0x12), ar.mem[0x11])
}
