package aram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIPLROM_ResetVectorPointsAtItself(t *testing.T) {
	require.Len(t, DefaultIPLROM, OverlaySize)
	lo := DefaultIPLROM[OverlaySize-2]
	hi := DefaultIPLROM[OverlaySize-1]
	vector := uint16(hi)<<8 | uint16(lo)
	require.Equal(t, uint16(OverlayBase), vector)
}

func TestARAM_WriteAlwaysUpdatesRAM(t *testing.T) {
	a := New(PolicyAccurate)
	a.Write(0x1234, 0x42)
	require.Equal(t, byte(0x42), a.Read(0x1234))
}

func TestARAM_AccurateOverlayOverridesReadsOnly(t *testing.T) {
	a := New(PolicyAccurate)
	a.LoadROM(DefaultIPLROM)
	a.Write(OverlayBase, 0x99) // underlying ARAM still gets the write
	a.SetOverlayEnabled(true)

	require.True(t, a.OverlayActive(OverlayBase))
	require.Equal(t, DefaultIPLROM[0], a.ROMByte(OverlayBase))
	require.Equal(t, byte(0x99), a.Read(OverlayBase)) // raw Read bypasses overlay

	a.SetOverlayEnabled(false)
	require.False(t, a.OverlayActive(OverlayBase))
}

func TestARAM_NaiveOverlayMutatesAndRestoresRAM(t *testing.T) {
	a := New(PolicyNaive)
	a.LoadROM(DefaultIPLROM)
	a.Write(OverlayBase, 0x99)

	a.SetOverlayEnabled(true)
	require.Equal(t, DefaultIPLROM[0], a.Read(OverlayBase))
	require.False(t, a.OverlayActive(OverlayBase)) // naive policy never overrides reads

	a.SetOverlayEnabled(false)
	require.Equal(t, byte(0x99), a.Read(OverlayBase))
}

func TestARAM_LoadImageAndReadWord(t *testing.T) {
	a := New(PolicyAccurate)
	var img [Size]byte
	img[0x10] = 0x34
	img[0x11] = 0x12
	a.LoadImage(img)

	require.Equal(t, uint16(0x1234), a.ReadWord(0x10))
	require.Equal(t, img, a.Image())
}
