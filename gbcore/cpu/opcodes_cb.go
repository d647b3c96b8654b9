package cpu

import "github.com/mwillard/gbcore/gbcore/bit"

// executeCB fetches and dispatches a CB-prefixed opcode. The 256-entry
// table decomposes the same way as the primary table: x = op>>6 selects
// the operation family (rotate/shift, BIT, RES, SET), y selects the
// bit index or rotate variant, and z selects the r-indexed operand.
func (c *CPU) executeCB() int {
	op := c.fetch8()
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	switch x {
	case 0:
		return c.cbRotateShift(y, z)
	case 1:
		return c.cbBit(y, z)
	case 2:
		return c.cbRes(y, z)
	default:
		return c.cbSet(y, z)
	}
}

func (c *CPU) cbRotateShift(y, z uint8) int {
	op := func(r *uint8) {
		switch y {
		case 0:
			c.rlc(r)
		case 1:
			c.rrc(r)
		case 2:
			c.rl(r)
		case 3:
			c.rr(r)
		case 4:
			c.sla(r)
		case 5:
			c.sra(r)
		case 6:
			c.swap(r)
		default:
			c.srl(r)
		}
	}

	if z == 6 {
		v := c.bus.Read8(c.getHL())
		op(&v)
		c.bus.Write8(c.getHL(), v)
		return 16
	}

	v := c.getR(z)
	op(&v)
	c.setR(z, v)
	return 8
}

func (c *CPU) cbBit(y, z uint8) int {
	if z == 6 {
		c.bitTest(y, c.bus.Read8(c.getHL()))
		return 12
	}
	c.bitTest(y, c.getR(z))
	return 8
}

func (c *CPU) cbRes(y, z uint8) int {
	if z == 6 {
		c.bus.Write8(c.getHL(), bit.Clear(y, c.bus.Read8(c.getHL())))
		return 16
	}
	c.setR(z, bit.Clear(y, c.getR(z)))
	return 8
}

func (c *CPU) cbSet(y, z uint8) int {
	if z == 6 {
		c.bus.Write8(c.getHL(), bit.Set(y, c.bus.Read8(c.getHL())))
		return 16
	}
	c.setR(z, bit.Set(y, c.getR(z)))
	return 8
}
