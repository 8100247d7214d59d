package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giannitedesco/spu-kit/internal/aram"
	"github.com/giannitedesco/spu-kit/internal/snapshot"
)

func buildSnapshotRaw(aramImg [aram.Size]byte, dspRegs [0x80]byte) []byte {
	raw := make([]byte, snapshot.Size)
	copy(raw, "SNES-SPC700 Sound File Data v0.30")
	raw[0x21] = 0x1A
	raw[0x22] = 0x1A
	raw[0x23] = snapshot.ID666Tagged
	raw[0x24] = 30

	// PC=0x0200, A=X=Y=0, PSW=0x02 (Z set), SP=0xEF.
	raw[0x25] = 0x00
	raw[0x26] = 0x02
	raw[0x2A] = 0x02
	raw[0x2B] = 0xEF

	copy(raw[0x100:], aramImg[:])
	copy(raw[0x10100:], dspRegs[:])

	return raw
}

func TestMachine_ResetPointsAtROMVector(t *testing.T) {
	var rom [aram.OverlaySize]byte
	rom[0x3E] = 0x00 // reset vector lo, 0xFFFE-0xFFC0=0x3E
	rom[0x3F] = 0x12 // reset vector hi -> PC = 0x1200

	m := New(aram.PolicyAccurate, rom, nil)
	m.Reset()
	require.False(t, m.Halted())
	require.Equal(t, uint16(0x1200), m.cpu.Regs().PC)
}

func TestMachine_LoadSnapshotInstallsState(t *testing.T) {
	var rom [aram.OverlaySize]byte
	var aramImg [aram.Size]byte
	aramImg[0x0200] = 0x00 // NOP at the restored PC
	var dspRegs [0x80]byte
	dspRegs[0x0C] = 0x7F // MVOLL

	m := New(aram.PolicyAccurate, rom, nil)
	raw := buildSnapshotRaw(aramImg, dspRegs)

	snap, err := m.LoadSnapshot(raw)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0200), snap.Regs.PC)

	n := m.Step()
	require.Equal(t, 4, n)
	require.False(t, m.Halted())
}

func TestMachine_StepHaltsOnUndefinedOpcode(t *testing.T) {
	var rom [aram.OverlaySize]byte
	var aramImg [aram.Size]byte
	aramImg[0x0200] = 0xFF // an undefined/reserved opcode slot
	var dspRegs [0x80]byte

	m := New(aram.PolicyAccurate, rom, nil)
	raw := buildSnapshotRaw(aramImg, dspRegs)
	_, err := m.LoadSnapshot(raw)
	require.NoError(t, err)

	m.Step()
	require.True(t, m.Halted())
	require.Equal(t, 0, m.Step())
}
