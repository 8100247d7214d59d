package aram

// DefaultIPLROM is the standard 64-byte SPC700 boot-ROM image: it
// clears the zero page, handshakes with the main CPU over $F4/$F5,
// streams a block of data into ARAM, and jumps to (or fetches another
// block from) the transferred address. Transcribed verbatim from
// _examples/original_source/src/spc700.c's ipl_rom table. Most .spc
// snapshots freeze a machine state well past this handshake and never
// execute it, but it's the default overlay image for a cold boot.
var DefaultIPLROM = [OverlaySize]byte{
	0xcd, 0xef, 0xbd,
	0xe8, 0x00, 0xc6, 0x1d, 0xd0, 0xfc,
	0x8f, 0xaa, 0xf4, 0x8f, 0xbb, 0xf5,
	0x78, 0xcc, 0xf4, 0xd0, 0xfb, 0x2f, 0x19,
	0xeb, 0xf4, 0xd0, 0xfc,
	0x7e, 0xf4, 0xd0, 0x0b,
	0xe4, 0xf5,
	0xcb, 0xf4,
	0xd7, 0x00,
	0xfc,
	0xd0, 0xf3,
	0xab, 0x01,
	0x10, 0xef,
	0x7e, 0xf4,
	0x10, 0xeb,
	0xba, 0xf6,
	0xda, 0x00,
	0xba, 0xf4,
	0xc4, 0xf4,
	0xdd,
	0x5d,
	0xd0, 0xdb,
	0x1f, 0x00, 0x00,
	0xc0, 0xff,
}
