package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildRaw assembles a minimal well-formed .spc blob for testing,
// leaving ARAM/DSP/extra-RAM regions zeroed except where a test cares.
func buildRaw() []byte {
	raw := make([]byte, Size)
	copy(raw[formatIDOff:], FormatID)
	raw[magicOff] = 0x1A
	raw[magicOff+1] = 0x1A
	raw[statusOff] = ID666Tagged
	raw[versionOff] = 30

	raw[regsOff] = 0x34   // PC lo
	raw[regsOff+1] = 0x12 // PC hi
	raw[regsOff+2] = 0xAA // A
	raw[regsOff+3] = 0xBB // X
	raw[regsOff+4] = 0xCC // Y
	raw[regsOff+5] = 0x02 // PSW
	raw[regsOff+6] = 0xEF // SP

	copy(raw[id666Off:], "Test Song")

	return raw
}

func TestDecode_HeaderAndRegs(t *testing.T) {
	raw := buildRaw()

	s, err := Decode(raw)
	require.NoError(t, err)
	require.True(t, s.ID666Tagged)
	require.Equal(t, byte(30), s.VersionMinor)
	require.Equal(t, uint16(0x1234), s.Regs.PC)
	require.Equal(t, byte(0xAA), s.Regs.A)
	require.Equal(t, byte(0xBB), s.Regs.X)
	require.Equal(t, byte(0xCC), s.Regs.Y)
	require.Equal(t, byte(0x02), s.Regs.PSW)
	require.Equal(t, byte(0xEF), s.Regs.SP)
	require.Equal(t, "Test Song", s.ID666.SongTitle)
}

func TestDecode_AramAndDspRegionsPlaced(t *testing.T) {
	raw := buildRaw()
	raw[aramOff] = 0x42
	raw[aramOff+aramLen-1] = 0x43
	raw[dspRegsOff] = 0x55
	raw[extraRAMOff] = 0x99

	s, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), s.ARAM[0])
	require.Equal(t, byte(0x43), s.ARAM[aramLen-1])
	require.Equal(t, byte(0x55), s.DSPRegs[0])
	require.Equal(t, byte(0x99), s.ExtraRAM[0])
}

func TestDecode_TruncatedFileRejected(t *testing.T) {
	raw := buildRaw()
	_, err := Decode(raw[:Size-1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_BadMagicRejected(t *testing.T) {
	raw := buildRaw()
	raw[magicOff] = 0x00
	_, err := Decode(raw)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestDecode_BadFormatIDRejected(t *testing.T) {
	raw := buildRaw()
	raw[0] = 'X'
	_, err := Decode(raw)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestDecode_UntaggedStatus(t *testing.T) {
	raw := buildRaw()
	raw[statusOff] = ID666NotTagged
	s, err := Decode(raw)
	require.NoError(t, err)
	require.False(t, s.ID666Tagged)
}

func TestID666_DumpDoesNotPanic(t *testing.T) {
	raw := buildRaw()
	s, err := Decode(raw)
	require.NoError(t, err)
	require.NotPanics(t, func() { s.ID666.Dump(nil) })
}
