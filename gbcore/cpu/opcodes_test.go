package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU_resetFetchesFromEntryPoint(t *testing.T) {
	c := newTestCPU()
	c.bus.Write8(0x0100, 0x00) // NOP
	c.bus.Write8(0x0101, 0x00) // NOP

	cyclesA := c.Step()
	cyclesB := c.Step()

	assert.Equal(t, 4, cyclesA)
	assert.Equal(t, 4, cyclesB)
	assert.Equal(t, uint16(0x0102), c.pc)
}

func TestCPU_jumpRelativeBackEdge(t *testing.T) {
	c := newTestCPU()
	c.bus.Write8(0x0100, 0x18) // JR d
	c.bus.Write8(0x0101, 0xFE) // d = -2

	cycles := c.Step()

	assert.Equal(t, uint16(0x0100), c.pc)
	assert.Equal(t, 12, cycles)
}

func TestCPU_callAndReturn(t *testing.T) {
	c := newTestCPU()
	c.bus.Write8(0x0100, 0xCD) // CALL 0x0200
	c.bus.Write8(0x0101, 0x00)
	c.bus.Write8(0x0102, 0x02)
	c.bus.Write8(0x0103, 0x76) // HALT (after returning)
	c.bus.Write8(0x0200, 0xC9) // RET

	c.Step() // CALL
	assert.Equal(t, uint16(0x0200), c.pc)
	assert.Equal(t, uint16(0xFFFC), c.sp)

	c.Step() // RET
	assert.Equal(t, uint16(0x0103), c.pc)
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestCPU_pushPopRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.setRP2(rp2BC, 0xBEEF)
	savedSP := c.sp

	c.pushStack(c.getRP2(rp2BC))
	c.setRP2(rp2DE, c.popStack())

	assert.Equal(t, uint16(0xBEEF), c.getRP2(rp2DE))
	assert.Equal(t, savedSP, c.sp)
}

func TestCPU_ldViaMemoryRoundTrips(t *testing.T) {
	c := newTestCPU()
	c.bus.Write8(0xC010, 0x99)
	c.a = 0
	c.b = 0

	c.bus.Write8(0x0100, 0xFA) // LD A,(nn)
	c.bus.Write8(0x0101, 0x10)
	c.bus.Write8(0x0102, 0xC0)
	c.Step()
	assert.Equal(t, uint8(0x99), c.a)

	c.setR(0, c.a) // LD B,A equivalent
	assert.Equal(t, uint8(0x99), c.b)
}

func TestCPU_interruptDispatch(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = true
	c.pc = 0x1234
	c.bus.Write8(0xFFFF, 0x01) // IE: VBlank
	c.bus.Write8(0xFF0F, 0x01) // IF: VBlank pending

	cycles := c.Step()

	assert.Equal(t, 16, cycles)
	assert.Equal(t, uint16(0x40), c.pc)
	assert.False(t, c.interruptsEnabled)
	assert.Equal(t, uint8(0x00), c.bus.Read8(0xFF0F))
}

func TestCPU_eiThenDiLeavesIMEDisabled(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = false

	c.bus.Write8(0x0100, 0xFB) // EI
	c.bus.Write8(0x0101, 0xF3) // DI

	c.Step() // EI: delayed, IME still false this step
	assert.False(t, c.interruptsEnabled)

	c.Step() // DI: overwrites before EI's delay fires
	assert.False(t, c.interruptsEnabled)
}

func TestCPU_haltClearedByPendingInterruptEvenWithoutIME(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = false
	c.halted = true
	c.bus.Write8(0xFFFF, 0x01)
	c.bus.Write8(0xFF0F, 0x01)

	cycles := c.Step()

	assert.False(t, c.halted)
	assert.Equal(t, 4, cycles, "resumes execution without vectoring")
}

func TestCPU_haltRemainsAssertedUntilInterruptPending(t *testing.T) {
	c := newTestCPU()
	c.halted = true

	cycles := c.Step()

	assert.True(t, c.halted)
	assert.Equal(t, 4, cycles)
}

func TestCPU_cbBitH(t *testing.T) {
	c := newTestCPU()
	c.h = 0x80
	c.setFlag(carryFlag)

	c.bus.Write8(0x0100, 0xCB)
	c.bus.Write8(0x0101, 0x7C) // BIT 7,H

	cycles := c.Step()

	assert.Equal(t, 8, cycles)
	assert.False(t, c.isSetFlag(zeroFlag))
	assert.False(t, c.isSetFlag(subFlag))
	assert.True(t, c.isSetFlag(halfCarryFlag))
	assert.True(t, c.isSetFlag(carryFlag))
}

func TestCPU_rlcaAlwaysClearsZero(t *testing.T) {
	c := newTestCPU()
	c.a = 0x00
	c.setFlag(zeroFlag)

	c.bus.Write8(0x0100, 0x07) // RLCA

	cycles := c.Step()

	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint8(0x00), c.a)
	assert.False(t, c.isSetFlag(zeroFlag), "primary-table rotates force Z=0")
}

func TestCPU_incIndirectHLCosts12AndPreservesCarry(t *testing.T) {
	c := newTestCPU()
	c.setHL(0xC020)
	c.bus.Write8(0xC020, 0x0F)
	c.setFlag(carryFlag)

	c.bus.Write8(0x0100, 0x34) // INC (HL)

	cycles := c.Step()

	assert.Equal(t, 12, cycles)
	assert.Equal(t, uint8(0x10), c.bus.Read8(0xC020))
	assert.True(t, c.isSetFlag(halfCarryFlag))
	assert.True(t, c.isSetFlag(carryFlag), "C preserved by INC")
}

func TestCPU_illegalOpcodePanics(t *testing.T) {
	c := newTestCPU()
	c.bus.Write8(0x0100, 0xD3)

	assert.Panics(t, func() { c.Step() })
}

func TestCPU_unknownCBOpcodeNeverOccurs(t *testing.T) {
	// Every one of the 256 CB-prefixed slots is covered by the four
	// x-groups (rotate/shift, BIT, RES, SET); this documents that the
	// table has no gaps by exercising the boundary opcodes.
	c := newTestCPU()
	for _, op := range []uint8{0x00, 0x3F, 0x40, 0x7F, 0x80, 0xBF, 0xC0, 0xFF} {
		c.pc = 0x0100
		c.bus.Write8(0x0100, 0xCB)
		c.bus.Write8(0x0101, op)
		assert.NotPanics(t, func() { c.Step() })
	}
}
