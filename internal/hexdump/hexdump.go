// Package hexdump provides the two complementary inspection helpers
// SPEC_FULL.md §4.14 calls for: an addressed hex+ASCII byte dump
// (grounded on _examples/original_source/src/hexdump.c's
// hex_dump_addr) and a Go-struct dumper for CPU/voice/ACR state during
// tracing, built on github.com/davecgh/go-spew.
package hexdump

import (
	"fmt"
	"io"
	"unicode"

	"github.com/davecgh/go-spew/spew"
)

// defaultLineLen mirrors hex_dump_addr's llen fallback of 0x10.
const defaultLineLen = 0x10

// Dump writes an addressed hex+ASCII rendering of data to w, one line
// per lineLen bytes (0 selects the reference's default of 16). Each
// line shows the ASCII column first, space-padded to lineLen, then the
// hex bytes, matching hex_dump_addr's layout.
func Dump(w io.Writer, base uint16, data []byte, lineLen int) {
	if len(data) == 0 {
		return
	}
	if lineLen <= 0 {
		lineLen = defaultLineLen
	}

	for off := 0; off < len(data); off += lineLen {
		end := off + lineLen
		if end > len(data) {
			end = len(data)
		}
		line := data[off:end]

		fmt.Fprintf(w, " | %04x : ", int(base)+off)

		for _, b := range line {
			if isPrint(b) {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		for i := len(line); i < lineLen; i++ {
			fmt.Fprint(w, " ")
		}

		for _, b := range line {
			fmt.Fprintf(w, " %02x", b)
		}
		fmt.Fprintln(w)
	}
}

func isPrint(b byte) bool {
	return b < 0x80 && unicode.IsPrint(rune(b))
}

// Regs pretty-prints an arbitrary Go value (CPU registers, voice
// state, ACR snapshot, ...) to stdout under a label, for ad hoc
// tracing. A thin wrapper so call sites don't need to import go-spew
// directly.
func Regs(label string, v any) {
	fmt.Printf("%s:\n%s", label, spew.Sdump(v))
}
