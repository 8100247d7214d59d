package liveplay

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giannitedesco/spu-kit/internal/dsp"
)

func TestStream_ReadReturnsWrittenFrames(t *testing.T) {
	s := NewStream(4)
	s.Write(dsp.Sample{Left: 1, Right: -1})
	s.Write(dsp.Sample{Left: 2, Right: -2})

	buf := make([]byte, 8)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	left0 := int16(binary.LittleEndian.Uint16(buf[0:2]))
	right0 := int16(binary.LittleEndian.Uint16(buf[2:4]))
	left1 := int16(binary.LittleEndian.Uint16(buf[4:6]))
	require.Equal(t, int16(1), left0)
	require.Equal(t, int16(-1), right0)
	require.Equal(t, int16(2), left1)
}

func TestStream_ReadPadsSilenceOnUnderrun(t *testing.T) {
	s := NewStream(4)
	buf := make([]byte, 8)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 1, s.Underruns)
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(buf[0:2]))
}

func TestStream_ReadTinyBufferReturnsSilence(t *testing.T) {
	s := NewStream(4)
	buf := make([]byte, 2)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestStream_CloseSignalsEOF(t *testing.T) {
	s := NewStream(4)
	s.Write(dsp.Sample{Left: 5, Right: 6})
	require.NoError(t, s.Close())

	buf := make([]byte, 8)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n) // drains the one buffered frame first

	_, err = s.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}
