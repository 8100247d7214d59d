package dsp

// BRR (Bit Rate Reduction) sample decoding, grounded on
// _examples/original_source/src/dsp.c's brr_pair/coeff*_mul/
// brr_filter*/decode_brr/brr_sample4 functions (spec.md §4.6).

// clamp16 saturates val to the int16 range, per dsp.c's clamp16.
func clamp16(val int) int16 {
	v := int32(val)
	if int32(int16(v)) == v {
		return int16(v)
	}
	if v < 0 {
		return -0x8000
	}
	return 0x7FFF
}

type brrPair struct {
	s [2]int16
}

// brrPairExtract splits a BRR data byte into its two sign-extended
// 4-bit nybbles: s[0] is the high nybble, s[1] the low nybble, per
// dsp.c's nybs_t/brr_pair_extract.
func brrPairExtract(b byte) brrPair {
	hi := int16(int8(b&0xF0)) >> 4
	lo := int16(int8(b<<4)) >> 4
	return brrPair{s: [2]int16{hi, lo}}
}

func brrPairScale(in brrPair, shift byte) brrPair {
	return brrPair{s: [2]int16{
		int16((int32(in.s[0]) << shift) >> 1),
		int16((int32(in.s[1]) << shift) >> 1),
	}}
}

// coeff1Mul multiplies by 15/16.
func coeff1Mul(p int32) int32 { return p + (-p >> 4) }

// coeff2Mul multiplies by 61/32.
func coeff2Mul(p int32) int32 { return (p << 1) + ((-p * 3) >> 5) }

// coeff3Mul multiplies by 115/64.
func coeff3Mul(p int32) int32 { return (p << 1) + ((-p * 13) >> 6) }

// coeff4Mul multiplies by 13/16.
func coeff4Mul(p int32) int32 { return p + ((-p * 3) >> 4) }

func brrFilter1(s, p int32) int32 { return s + coeff1Mul(p) }
func brrFilter2(s, p, pp int32) int32 { return s + coeff2Mul(p) - coeff1Mul(pp) }
func brrFilter3(s, p, pp int32) int32 { return s + coeff3Mul(p) - coeff4Mul(pp) }

func wrap12(v byte) byte {
	if v >= 12 {
		return v - 12
	}
	return v
}

// vfilterState returns the (older, old) decoded samples immediately
// preceding the ring buffer's write cursor.
func (st *voiceState) vfilterState() (older, old int16) {
	if st.bufPos != 0 {
		return st.buf[st.bufPos-2], st.buf[st.bufPos-1]
	}
	return st.buf[brrBufSize-2], st.buf[brrBufSize-1]
}

func (st *voiceState) brrByte(mem Memory) byte {
	v := mem.Read(st.brrAddr + uint16(st.brrOff))
	st.brrOff++
	return v
}

// brrSample4 decodes one BRR nybble-pair byte pair (4 output samples)
// into the voice's ring buffer, per dsp.c's brr_sample4.
func (st *voiceState) brrSample4(mem Memory) {
	filter := (st.brrHdr >> 2) & 3
	scale := st.brrHdr >> 4
	shift := scale
	if shift > 12 {
		shift = 12
	}
	older, old := st.vfilterState()

	in0 := brrPairScale(brrPairExtract(st.brrByte(mem)), shift)
	in1 := brrPairScale(brrPairExtract(st.brrByte(mem)), shift)

	var a, b, c, d int32
	switch filter {
	case 0:
		a, b, c, d = int32(in0.s[0]), int32(in0.s[1]), int32(in1.s[0]), int32(in1.s[1])
	case 1:
		a = brrFilter1(int32(in0.s[0]), int32(old))
		b = brrFilter1(int32(in0.s[1]), a)
		c = brrFilter1(int32(in1.s[0]), b)
		d = brrFilter1(int32(in1.s[1]), c)
	case 2:
		a = brrFilter2(int32(in0.s[0]), int32(old), int32(older))
		b = brrFilter2(int32(in0.s[1]), a, int32(old))
		c = brrFilter2(int32(in1.s[0]), b, a)
		d = brrFilter2(int32(in1.s[1]), c, b)
	case 3:
		a = brrFilter3(int32(in0.s[0]), int32(old), int32(older))
		b = brrFilter3(int32(in0.s[1]), a, int32(old))
		c = brrFilter3(int32(in1.s[0]), b, a)
		d = brrFilter3(int32(in1.s[1]), c, b)
	}

	st.buf[st.bufPos+0] = clamp16(int(a))
	st.buf[st.bufPos+1] = clamp16(int(b))
	st.buf[st.bufPos+2] = clamp16(int(c))
	st.buf[st.bufPos+3] = clamp16(int(d))
	st.bufPos += 4
	if st.bufPos >= brrBufSize {
		st.bufPos = 0
	}
}

// dirEntry is a 4-byte directory record: sample base and loop point.
type dirEntry struct {
	base, loop uint16
}

func (d *DSP) dirpEffectiveAddr() uint16 {
	return uint16(d.dirPage()) << 8
}

func (d *DSP) srcnEffectiveAddr(srcn byte) uint16 {
	return d.dirpEffectiveAddr() + uint16(srcn)<<2
}

func (d *DSP) loadDirEntry(addr uint16) dirEntry {
	return dirEntry{
		base: d.mem.ReadWord(addr),
		loop: d.mem.ReadWord(addr + 2),
	}
}

func (d *DSP) voiceSrcnPointer(i int) uint16 {
	return d.srcnEffectiveAddr(d.srcn(i))
}
