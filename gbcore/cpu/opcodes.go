package cpu

import "github.com/mwillard/gbcore/gbcore/bit"

// execute dispatches a fetched primary opcode and returns the cycle cost
// of the instruction, including any operand fetches. Decoding follows
// the Sharp LR35902's standard bit-field decomposition: x = op>>6,
// y = (op>>3)&7, z = op&7, p = y>>1, q = y&1.
func (c *CPU) execute(op uint8) int {
	if illegalOpcodes[op] {
		panic(decodeError(c.pc-1, op, false))
	}

	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.executeBlock0(op, y, z, p, q)
	case 1:
		return c.executeBlock1(y, z)
	case 2:
		return c.executeBlock2(y, z)
	default:
		return c.executeBlock3(op, y, z, p, q)
	}
}

// executeBlock0 covers opcodes 0x00-0x3F: NOP/control, 16-bit loads and
// INC/DEC, 8-bit INC/DEC/LD r,n, and the rotate/misc-A family.
func (c *CPU) executeBlock0(op, y, z, p, q uint8) int {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
			return 4
		case 1: // LD (nn),SP
			addr := c.fetch16()
			low, high := bit.SplitLE(c.sp)
			c.bus.Write8(addr, low)
			c.bus.Write8(addr+1, high)
			return 20
		case 2: // STOP
			c.fetch8()
			return 4
		case 3: // JR d
			return 8 + c.jumpRelative(true)
		default: // JR cc,d (y=4..7)
			return 8 + c.jumpRelative(c.condition(y-4))
		}
	case 1:
		if q == 0 { // LD rp,nn
			c.setRP(p, c.fetch16())
			return 12
		}
		// ADD HL,rp
		c.addToHL(c.getRP(p))
		return 8
	case 2:
		return c.indirectLoad(p, q)
	case 3:
		if q == 0 { // INC rp
			c.setRP(p, c.getRP(p)+1)
		} else { // DEC rp
			c.setRP(p, c.getRP(p)-1)
		}
		return 8
	case 4: // INC r
		return c.incDecR(y, true)
	case 5: // DEC r
		return c.incDecR(y, false)
	case 6: // LD r,n
		n := c.fetch8()
		c.setR(y, n)
		if y == 6 {
			return 12
		}
		return 8
	default: // z == 7: rotate-A / DAA / CPL / SCF / CCF
		return c.miscAccumulatorOp(y)
	}
}

// indirectLoad handles the 8 LD (rr),A / LD A,(rr) forms at z==2.
func (c *CPU) indirectLoad(p, q uint8) int {
	switch {
	case q == 0 && p == 0: // LD (BC),A
		c.bus.Write8(c.getRP(rpBC), c.a)
	case q == 0 && p == 1: // LD (DE),A
		c.bus.Write8(c.getRP(rpDE), c.a)
	case q == 0 && p == 2: // LD (HL+),A
		hl := c.getHL()
		c.bus.Write8(hl, c.a)
		c.setHL(hl + 1)
	case q == 0 && p == 3: // LD (HL-),A
		hl := c.getHL()
		c.bus.Write8(hl, c.a)
		c.setHL(hl - 1)
	case q == 1 && p == 0: // LD A,(BC)
		c.a = c.bus.Read8(c.getRP(rpBC))
	case q == 1 && p == 1: // LD A,(DE)
		c.a = c.bus.Read8(c.getRP(rpDE))
	case q == 1 && p == 2: // LD A,(HL+)
		hl := c.getHL()
		c.a = c.bus.Read8(hl)
		c.setHL(hl + 1)
	case q == 1 && p == 3: // LD A,(HL-)
		hl := c.getHL()
		c.a = c.bus.Read8(hl)
		c.setHL(hl - 1)
	}
	return 8
}

func (c *CPU) incDecR(y uint8, increment bool) int {
	if y == 6 {
		v := c.bus.Read8(c.getHL())
		if increment {
			c.inc(&v)
		} else {
			c.dec(&v)
		}
		c.bus.Write8(c.getHL(), v)
		return 12
	}

	v := c.getR(y)
	if increment {
		c.inc(&v)
	} else {
		c.dec(&v)
	}
	c.setR(y, v)
	return 4
}

// miscAccumulatorOp covers the z==7 block0 family: RLCA, RRCA, RLA, RRA,
// DAA, CPL, SCF, CCF. Unlike their CB-prefixed counterparts, the rotate
// forms always clear Z.
func (c *CPU) miscAccumulatorOp(y uint8) int {
	switch y {
	case 0:
		c.rlc(&c.a)
		c.resetFlag(zeroFlag)
	case 1:
		c.rrc(&c.a)
		c.resetFlag(zeroFlag)
	case 2:
		c.rl(&c.a)
		c.resetFlag(zeroFlag)
	case 3:
		c.rr(&c.a)
		c.resetFlag(zeroFlag)
	case 4:
		c.daa()
	case 5:
		c.a = ^c.a
		c.setFlag(subFlag)
		c.setFlag(halfCarryFlag)
	case 6:
		c.resetFlag(subFlag)
		c.resetFlag(halfCarryFlag)
		c.setFlag(carryFlag)
	case 7:
		c.resetFlag(subFlag)
		c.resetFlag(halfCarryFlag)
		c.setFlagToCondition(carryFlag, !c.isSetFlag(carryFlag))
	}
	return 4
}

// jumpRelative reads the signed 8-bit displacement and, if taken, adds
// it to PC. Returns the extra cycles charged when the branch is taken.
func (c *CPU) jumpRelative(take bool) int {
	d := int8(c.fetch8())
	if !take {
		return 0
	}
	c.pc = uint16(int32(c.pc) + int32(d))
	return 4
}

// condition evaluates one of the four branch conditions: NZ, Z, NC, C.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isSetFlag(zeroFlag)
	case 1:
		return c.isSetFlag(zeroFlag)
	case 2:
		return !c.isSetFlag(carryFlag)
	default:
		return c.isSetFlag(carryFlag)
	}
}

// executeBlock1 covers opcodes 0x40-0x7F: LD r,r' and HALT (the one
// slot in this block, LD (HL),(HL), that would otherwise decode to a
// register-to-itself indirect load).
func (c *CPU) executeBlock1(y, z uint8) int {
	if y == 6 && z == 6 {
		c.halted = true
		return 4
	}

	v := c.getR(z)
	c.setR(y, v)

	if y == 6 || z == 6 {
		return 8
	}
	return 4
}

// executeBlock2 covers opcodes 0x80-0xBF: ALU A,r.
func (c *CPU) executeBlock2(y, z uint8) int {
	v := c.getR(z)
	c.aluOp(y, v)

	if z == 6 {
		return 8
	}
	return 4
}

func (c *CPU) aluOp(y uint8, v uint8) {
	switch y {
	case 0:
		c.addToA(v)
	case 1:
		c.adcToA(v)
	case 2:
		c.sub(v)
	case 3:
		c.sbc(v)
	case 4:
		c.and(v)
	case 5:
		c.xor(v)
	case 6:
		c.or(v)
	case 7:
		c.cp(v)
	}
}

// executeBlock3 covers opcodes 0xC0-0xFF: conditional RET/JP/CALL,
// unconditional control flow, PUSH/POP, ALU A,n, RST, and the I/O and
// stack-frame oddballs (LDH, ADD SP,d, LD HL,SP+d, EI/DI).
func (c *CPU) executeBlock3(op, y, z, p, q uint8) int {
	switch z {
	case 0:
		switch {
		case y <= 3: // RET cc
			if c.condition(y) {
				c.pc = c.popStack()
				return 20
			}
			return 8
		case y == 4: // LDH (n),A
			n := c.fetch8()
			c.bus.Write8(0xFF00+uint16(n), c.a)
			return 12
		case y == 5: // ADD SP,d
			c.addSPRelative()
			return 16
		case y == 6: // LDH A,(n)
			n := c.fetch8()
			c.a = c.bus.Read8(0xFF00 + uint16(n))
			return 12
		default: // y == 7: LD HL,SP+d
			c.setHL(c.spPlusRelative())
			return 12
		}
	case 1:
		if q == 0 { // POP rp2
			c.setRP2(p, c.popStack())
			return 12
		}
		switch p {
		case 0: // RET
			c.pc = c.popStack()
			return 16
		case 1: // RETI
			c.pc = c.popStack()
			c.interruptsEnabled = true
			return 16
		case 2: // JP HL
			c.pc = c.getHL()
			return 4
		default: // LD SP,HL
			c.sp = c.getHL()
			return 8
		}
	case 2:
		switch {
		case y <= 3: // JP cc,nn
			target := c.fetch16()
			if c.condition(y) {
				c.pc = target
				return 16
			}
			return 12
		case y == 4: // LD (C),A
			c.bus.Write8(0xFF00+uint16(c.c), c.a)
			return 8
		case y == 5: // LD (nn),A
			c.bus.Write8(c.fetch16(), c.a)
			return 16
		case y == 6: // LD A,(C)
			c.a = c.bus.Read8(0xFF00 + uint16(c.c))
			return 8
		default: // LD A,(nn)
			c.a = c.bus.Read8(c.fetch16())
			return 16
		}
	case 3:
		switch y {
		case 0: // JP nn
			c.pc = c.fetch16()
			return 16
		case 1: // CB prefix
			return c.executeCB()
		case 6: // DI
			c.interruptsEnabled = false
			c.eiPending = 0
			c.diPending = 0
			return 4
		case 7: // EI
			c.eiPending = 2
			return 4
		default:
			panic(decodeError(c.pc-1, op, false))
		}
	case 4: // CALL cc,nn
		if y > 3 {
			panic(decodeError(c.pc-1, op, false))
		}
		target := c.fetch16()
		if c.condition(y) {
			c.pushStack(c.pc)
			c.pc = target
			return 24
		}
		return 12
	case 5:
		if q == 0 { // PUSH rp2
			c.pushStack(c.getRP2(p))
			return 16
		}
		if p == 0 { // CALL nn
			target := c.fetch16()
			c.pushStack(c.pc)
			c.pc = target
			return 24
		}
		panic(decodeError(c.pc-1, op, false))
	case 6: // ALU A,n
		n := c.fetch8()
		c.aluOp(y, n)
		return 8
	default: // z == 7: RST
		c.pushStack(c.pc)
		c.pc = uint16(y) * 8
		return 16
	}
}

// addSPRelative implements ADD SP,d: the displacement is signed, but
// the flags are computed as if adding the zero-extended byte to the low
// byte of SP, matching how real LR35902 hardware sets H/C here.
func (c *CPU) addSPRelative() {
	c.sp = c.spPlusRelative()
}

// spPlusRelative computes SP+d (signed 8-bit d) and sets flags per the
// unsigned-byte-addition semantics shared by ADD SP,d and LD HL,SP+d.
func (c *CPU) spPlusRelative() uint16 {
	d := int8(c.fetch8())
	sp := c.sp
	value := uint16(int32(sp) + int32(d))

	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, bit.HalfCarryAdd(uint8(sp), uint8(d), 0))
	c.setFlagToCondition(carryFlag, bit.CarryAdd(uint8(sp), uint8(d), 0))

	return value
}
