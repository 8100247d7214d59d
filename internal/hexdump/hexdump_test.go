package hexdump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDump_SingleLineAsciiAndHex(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, 0x0100, []byte("Hi\x00"), 0)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, " | 0100 : "))
	require.Contains(t, out, "Hi.")
	require.Contains(t, out, " 48 69 00")
}

func TestDump_EmptyDataIsNoop(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, 0, nil, 0)
	require.Empty(t, buf.String())
}

func TestDump_WrapsAtLineLen(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, 0, []byte{1, 2, 3, 4}, 2)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
}

func TestRegs_DoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		Regs("cpu", struct{ A, X byte }{A: 1, X: 2})
	})
}
