// Package snapshot decodes .spc blob files: the fixed 0x10200-byte
// dump format produced by SNES emulators that freezes CPU registers,
// the 64 KiB ARAM image, the 128-byte DSP register file, and the
// 64-byte IPL-ROM extra-RAM shadow, per spec.md §6. Grounded on
// _examples/original_source/include/spu-kit/spc-file.h's packed
// struct spc_file and src/main.c's load/convert_regs/setup_spc700
// flow.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/giannitedesco/spu-kit/internal/cpu"
)

// Size is the fixed length of a well-formed .spc file.
const Size = 0x10200

const (
	formatIDOff  = 0x00
	formatIDLen  = 33
	magicOff     = 0x21
	statusOff    = 0x23
	versionOff   = 0x24
	regsOff      = 0x25
	id666Off     = 0x2E
	id666Len     = 210
	aramOff      = 0x100
	aramLen      = 0x10000
	dspRegsOff   = aramOff + aramLen // 0x10100
	dspRegsLen   = 0x80
	unusedOff    = dspRegsOff + dspRegsLen // 0x10180
	unusedLen    = 64
	extraRAMOff  = unusedOff + unusedLen // 0x101C0
	extraRAMLen  = 64
)

// FormatID is the fixed signature every .spc file opens with.
const FormatID = "SNES-SPC700 Sound File Data v0.30"

// Magic is the two-byte sentinel following the format ID.
const Magic = 0x1A1A

// ID666 tag-status byte values.
const (
	ID666Tagged    = 0x1A
	ID666NotTagged = 0x1B
)

// ID666 holds the free-text song metadata tag, per spc-file.h's
// struct spc_id666_txt. The tag is always decoded with this text
// layout; binary-encoded tags (spc_id666_bin) are not decoded
// separately, and the raw tag bytes are not kept.
type ID666 struct {
	SongTitle              string
	GameTitle              string
	Dumper                 string
	Comments               string
	DumpDate               string
	SongSecs               string
	FadeMsecs              string
	Artist                 string
	DefaultChannelDisables byte
	DumpEmulator           byte
}

// Dump logs every ID666 field at INFO level, mirroring main.c's
// print_id666(). A pure convenience for CLI tools; the core never
// calls it.
func (id ID666) Dump(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("id666 tag",
		"song", id.SongTitle,
		"game", id.GameTitle,
		"dumper", id.Dumper,
		"comments", id.Comments,
		"dumped", id.DumpDate,
		"song_secs", id.SongSecs,
		"fade_msecs", id.FadeMsecs,
		"artist", id.Artist,
		"channel_disables", id.DefaultChannelDisables,
		"dump_emulator", id.DumpEmulator,
	)
}

// Snapshot is the fully decoded contents of a .spc file.
type Snapshot struct {
	ID666Tagged bool
	VersionMinor byte
	ID666       ID666

	Regs cpu.Regs

	ARAM     [aramLen]byte
	DSPRegs  [dspRegsLen]byte
	ExtraRAM [extraRAMLen]byte
}

// ErrTruncated is returned when the input is shorter than Size.
var ErrTruncated = errors.New("snapshot: truncated file, want 0x10200 bytes")

// ErrBadMagic is returned when the format-ID or magic fields don't
// match a recognized .spc header.
var ErrBadMagic = errors.New("snapshot: bad header magic")

// Decode parses a raw .spc blob. It does not require an exact length
// match beyond Size bytes being present; trailing bytes are ignored.
func Decode(raw []byte) (*Snapshot, error) {
	if len(raw) < Size {
		return nil, fmt.Errorf("%w: got %d bytes", ErrTruncated, len(raw))
	}

	if string(raw[formatIDOff:formatIDOff+len(FormatID)]) != FormatID {
		return nil, ErrBadMagic
	}
	magic := uint16(raw[magicOff]) | uint16(raw[magicOff+1])<<8
	if magic != Magic {
		return nil, ErrBadMagic
	}

	s := &Snapshot{}

	status := raw[statusOff]
	s.ID666Tagged = status == ID666Tagged
	s.VersionMinor = raw[versionOff]

	s.Regs = cpu.Regs{
		PC:  uint16(raw[regsOff]) | uint16(raw[regsOff+1])<<8,
		A:   raw[regsOff+2],
		X:   raw[regsOff+3],
		Y:   raw[regsOff+4],
		PSW: raw[regsOff+5],
		SP:  raw[regsOff+6],
	}

	s.ID666 = decodeID666Text(raw[id666Off : id666Off+id666Len])

	copy(s.ARAM[:], raw[aramOff:aramOff+aramLen])
	copy(s.DSPRegs[:], raw[dspRegsOff:dspRegsOff+dspRegsLen])
	copy(s.ExtraRAM[:], raw[extraRAMOff:extraRAMOff+extraRAMLen])

	return s, nil
}

func decodeID666Text(tag []byte) ID666 {
	return ID666{
		SongTitle:              cstr(tag[0:32]),
		GameTitle:              cstr(tag[32:64]),
		Dumper:                 cstr(tag[64:80]),
		Comments:               cstr(tag[80:112]),
		DumpDate:               cstr(tag[112:123]),
		SongSecs:               cstr(tag[123:126]),
		FadeMsecs:              cstr(tag[126:131]),
		Artist:                 cstr(tag[131:163]),
		DefaultChannelDisables: tag[163],
		DumpEmulator:           tag[164],
	}
}

// cstr trims a fixed-width NUL-padded field down to its printable
// prefix, the way the reference's "%.*s" formatting effectively does.
func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
