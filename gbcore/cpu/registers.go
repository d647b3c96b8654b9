package cpu

import "github.com/mwillard/gbcore/gbcore/bit"

// Flag is one of the 4 flag bits held in the high nibble of F.
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

// rp indexes the {BC, DE, HL, SP} grouping used by 16-bit arithmetic
// and most loads.
const (
	rpBC = 0
	rpDE = 1
	rpHL = 2
	rpSP = 3
)

// rp2 indexes the {BC, DE, HL, AF} grouping used by PUSH/POP.
const (
	rp2BC = 0
	rp2DE = 1
	rp2HL = 2
	rp2AF = 3
)

// getRP reads one of the rp-indexed 16-bit register pairs.
func (c *CPU) getRP(i uint8) uint16 {
	switch i {
	case rpBC:
		return bit.Combine(c.b, c.c)
	case rpDE:
		return bit.Combine(c.d, c.e)
	case rpHL:
		return bit.Combine(c.h, c.l)
	case rpSP:
		return c.sp
	default:
		panic("cpu: invalid rp index")
	}
}

// setRP writes one of the rp-indexed 16-bit register pairs.
func (c *CPU) setRP(i uint8, v uint16) {
	low, high := bit.Low(v), bit.High(v)
	switch i {
	case rpBC:
		c.b, c.c = high, low
	case rpDE:
		c.d, c.e = high, low
	case rpHL:
		c.h, c.l = high, low
	case rpSP:
		c.sp = v
	default:
		panic("cpu: invalid rp index")
	}
}

// getRP2 reads one of the rp2-indexed 16-bit register pairs (PUSH/POP).
func (c *CPU) getRP2(i uint8) uint16 {
	switch i {
	case rp2BC:
		return bit.Combine(c.b, c.c)
	case rp2DE:
		return bit.Combine(c.d, c.e)
	case rp2HL:
		return bit.Combine(c.h, c.l)
	case rp2AF:
		return bit.Combine(c.a, c.f)
	default:
		panic("cpu: invalid rp2 index")
	}
}

// setRP2 writes one of the rp2-indexed 16-bit register pairs.
// AF's low nibble of F is always kept at zero.
func (c *CPU) setRP2(i uint8, v uint16) {
	low, high := bit.Low(v), bit.High(v)
	switch i {
	case rp2BC:
		c.b, c.c = high, low
	case rp2DE:
		c.d, c.e = high, low
	case rp2HL:
		c.h, c.l = high, low
	case rp2AF:
		c.a, c.f = high, low&0xF0
	default:
		panic("cpu: invalid rp2 index")
	}
}

// getR reads one of the r-indexed 8-bit operands: B,C,D,E,H,L,(HL),A.
// Index 6 is an indirect read through HL rather than a register.
func (c *CPU) getR(i uint8) uint8 {
	switch i {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.bus.Read8(c.getHL())
	case 7:
		return c.a
	default:
		panic("cpu: invalid r index")
	}
}

// setR writes one of the r-indexed 8-bit operands.
func (c *CPU) setR(i uint8, v uint8) {
	switch i {
	case 0:
		c.b = v
	case 1:
		c.c = v
	case 2:
		c.d = v
	case 3:
		c.e = v
	case 4:
		c.h = v
	case 5:
		c.l = v
	case 6:
		c.bus.Write8(c.getHL(), v)
	case 7:
		c.a = v
	default:
		panic("cpu: invalid r index")
	}
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setHL(v uint16) {
	c.h = bit.High(v)
	c.l = bit.Low(v)
}

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &^= uint8(flag)
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

// flagToBit returns 1 if the flag is set, 0 otherwise.
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}
