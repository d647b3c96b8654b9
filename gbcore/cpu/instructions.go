package cpu

import "github.com/mwillard/gbcore/gbcore/bit"

// inc increments an 8-bit operand in place, updating Z/N/H and
// preserving C.
func (c *CPU) inc(r *uint8) {
	old := *r
	*r++
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfCarryAdd(old, 1, 0))
}

// dec decrements an 8-bit operand in place, updating Z/N/H and
// preserving C.
func (c *CPU) dec(r *uint8) {
	old := *r
	*r--
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfBorrowSub(old, 1, 0))
}

// addToA implements ADD A,n.
func (c *CPU) addToA(value uint8) {
	a := c.a
	result := a + value

	c.a = result
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfCarryAdd(a, value, 0))
	c.setFlagToCondition(carryFlag, bit.CarryAdd(a, value, 0))
}

// adcToA implements ADC A,n. The carry-in is handed to the predicates
// directly: computing n' = n + carryIn first and reusing the plain ADD
// path loses information when n == 0xFF and carryIn == 1.
func (c *CPU) adcToA(value uint8) {
	a := c.a
	carryIn := c.flagToBit(carryFlag)
	result := a + value + carryIn

	c.a = result
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfCarryAdd(a, value, carryIn))
	c.setFlagToCondition(carryFlag, bit.CarryAdd(a, value, carryIn))
}

// addToHL implements ADD HL,rp: half-carry is carry out of bit 11, carry
// is carry out of bit 15.
func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()
	result := hl + value

	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfCarryAdd16(hl, value))
	c.setFlagToCondition(carryFlag, bit.CarryAdd16(hl, value))
	c.setHL(result)
}

// sub implements SUB A,n.
func (c *CPU) sub(value uint8) {
	a := c.a
	result := a - value

	c.a = result
	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfBorrowSub(a, value, 0))
	c.setFlagToCondition(carryFlag, bit.BorrowSub(a, value, 0))
}

// sbc implements SBC A,n, with the same carry-in handling as adcToA.
func (c *CPU) sbc(value uint8) {
	a := c.a
	carryIn := c.flagToBit(carryFlag)
	result := a - value - carryIn

	c.a = result
	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfBorrowSub(a, value, carryIn))
	c.setFlagToCondition(carryFlag, bit.BorrowSub(a, value, carryIn))
}

// cp implements CP n: same flag effects as SUB, A is preserved.
func (c *CPU) cp(value uint8) {
	a := c.a
	c.sub(value)
	c.a = a
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

// rlc rotates r left, bit 7 goes to both bit 0 and C. Z is set per
// result (CB-prefixed family only: primary RLCA forces Z=0 instead, see
// opcodes.go).
func (c *CPU) rlc(r *uint8) {
	carry := (*r >> 7) & 1
	*r = (*r << 1) | carry
	c.setFlagToCondition(carryFlag, carry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// rrc rotates r right, bit 0 goes to both bit 7 and C.
func (c *CPU) rrc(r *uint8) {
	carry := *r & 1
	*r = (*r >> 1) | (carry << 7)
	c.setFlagToCondition(carryFlag, carry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// rl rotates r left through carry.
func (c *CPU) rl(r *uint8) {
	oldCarry := c.flagToBit(carryFlag)
	newCarry := (*r >> 7) & 1
	*r = (*r << 1) | oldCarry
	c.setFlagToCondition(carryFlag, newCarry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// rr rotates r right through carry.
func (c *CPU) rr(r *uint8) {
	oldCarry := c.flagToBit(carryFlag)
	newCarry := *r & 1
	*r = (*r >> 1) | (oldCarry << 7)
	c.setFlagToCondition(carryFlag, newCarry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// sla shifts r left, bit 7 into carry, bit 0 cleared.
func (c *CPU) sla(r *uint8) {
	carry := (*r >> 7) & 1
	*r <<= 1
	c.setFlagToCondition(carryFlag, carry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// sra shifts r right, bit 0 into carry, bit 7 preserved (arithmetic).
func (c *CPU) sra(r *uint8) {
	carry := *r & 1
	top := *r & 0x80
	*r = (*r >> 1) | top
	c.setFlagToCondition(carryFlag, carry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// srl shifts r right, bit 0 into carry, bit 7 cleared (logical).
func (c *CPU) srl(r *uint8) {
	carry := *r & 1
	*r >>= 1
	c.setFlagToCondition(carryFlag, carry == 1)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// swap exchanges the nibbles of r and clears C.
func (c *CPU) swap(r *uint8) {
	*r = (*r << 4) | (*r >> 4)
	c.resetFlag(carryFlag)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(zeroFlag, *r == 0)
}

// bitTest implements BIT b,r: Z reflects whether the bit is clear, N=0,
// H=1, C preserved.
func (c *CPU) bitTest(bitIndex uint8, value uint8) {
	c.setFlagToCondition(zeroFlag, !bit.IsSet(bitIndex, value))
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

// daa applies the standard BCD adjustment to A.
func (c *CPU) daa() {
	a := c.a
	adjust := uint8(0)
	carry := false

	if c.isSetFlag(subFlag) {
		if c.isSetFlag(halfCarryFlag) {
			adjust += 0x06
		}
		if c.isSetFlag(carryFlag) {
			adjust += 0x60
			carry = true
		}
		a -= adjust
	} else {
		if c.isSetFlag(halfCarryFlag) || a&0x0F > 0x09 {
			adjust += 0x06
		}
		if c.isSetFlag(carryFlag) || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.a = a
	c.setFlagToCondition(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}
