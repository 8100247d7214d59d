package dsp

// The 3-counter gated-rate network controlling envelope/GAIN step
// timing, grounded on
// _examples/original_source/src/dsp.c's ctr_number/ctr_mask/ctr_rate/
// ctr_internal_init/ctr_initial tables and ctr_init/ctr_run/ctr_read.

var ctrNumber = [32]byte{
	0xFF,
	0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	2, 0, 1,
	0,
	0,
}

var ctrMask = [32]uint16{
	0,
	0x7FF, 0x1FF,
	0x0FF, 0x3FF, 0x0FF,
	0x07F, 0x1FF, 0x07F,
	0x03F, 0x0FF, 0x03F,
	0x01F, 0x07F, 0x01F,
	0x00F, 0x03F, 0x00F,
	0x007, 0x01F, 0x007,
	0x003, 0x00F, 0x003,
	0x001, 0x007, 0x001,
	0x000, 0x003, 0x000,
	0x001,
	0x000,
}

var ctrRate = [3]byte{1, 3, 5}
var ctrInternalInit = [3]byte{1, 2, 3}
var ctrInitial = [3]int32{0, -347, -107}

// counters implements the three gated-rate counters. out is tracked as
// uint32 (matching the reference's "unsigned int") so the negative
// initial values wrap exactly as they do in C two's-complement
// arithmetic; only ctr_mask bits are ever inspected.
type counters struct {
	internal [3]byte
	out      [3]uint32
}

func newCounters() counters {
	c := counters{internal: ctrInternalInit}
	for i := range c.out {
		c.out[i] = uint32(ctrInitial[i])
	}
	return c
}

func (c *counters) run() {
	c.out[0]++

	c.internal[1]--
	if c.internal[1] == 0 {
		c.internal[1] = 3
		c.out[1]++
	}

	c.internal[2]--
	if c.internal[2] == 0 {
		c.internal[2] = 5
		c.out[2]++
	}
}

func (c *counters) read(rate byte) bool {
	if rate == 0 {
		return false
	}
	nr := ctrNumber[rate]
	if c.out[nr]&uint32(ctrMask[rate]) != 0 {
		return false
	}
	return c.internal[nr] == ctrRate[nr]
}
