// Package cpu implements the Sharp LR35902 instruction fetch/decode/execute
// engine: register file, flag semantics, interrupt controller, and the
// primary + CB-prefixed opcode tables.
package cpu

import (
	"fmt"

	"github.com/mwillard/gbcore/gbcore/addr"
	"github.com/mwillard/gbcore/gbcore/bit"
	"github.com/mwillard/gbcore/gbcore/memory"
)

// bus is the minimal memory-router surface the CPU needs. Defined here
// (the consumer) rather than depended on concretely, so tests can swap
// in a bare MMU without any cartridge/GPU wiring.
type bus interface {
	Read8(address uint16) byte
	Write8(address uint16, value byte)
}

// CPU holds the full Sharp LR35902 register file and interrupt state.
type CPU struct {
	a, f, b, c, d, e, h, l uint8
	sp, pc                 uint16

	bus bus

	interruptsEnabled bool
	eiPending         int
	diPending         int
	halted            bool
}

// New returns a CPU wired to the given bus, with registers set to the
// post-boot-ROM handoff state.
func New(b bus) *CPU {
	return &CPU{
		a: 0x01, f: 0xB0,
		b: 0x00, c: 0x13,
		d: 0x00, e: 0xD8,
		h: 0x01, l: 0x4D,
		sp:  0xFFFE,
		pc:  0x0100,
		bus: b,
	}
}

// GetPC returns the current program counter, for debuggers/tests.
func (c *CPU) GetPC() uint16 { return c.pc }

// GetSP returns the current stack pointer, for debuggers/tests.
func (c *CPU) GetSP() uint16 { return c.sp }

// IsHalted reports whether the CPU is idling on a HALT instruction.
func (c *CPU) IsHalted() bool { return c.halted }

// InterruptsEnabled reports the current value of IME.
func (c *CPU) InterruptsEnabled() bool { return c.interruptsEnabled }

// Step executes exactly one unit of work: a serviced interrupt, a HALT
// idle tick, or one instruction, and returns the cycles it consumed.
func (c *CPU) Step() int {
	c.tickDelayedIME()

	if c.serviceInterrupt() {
		return 16
	}

	if c.halted {
		return 4
	}

	op := c.fetch8()
	return c.execute(op)
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read8(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return bit.JoinLE(low, high)
}

func (c *CPU) pushStack(v uint16) {
	low, high := bit.SplitLE(v)
	c.sp--
	c.bus.Write8(c.sp, high)
	c.sp--
	c.bus.Write8(c.sp, low)
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read8(c.sp)
	c.sp++
	high := c.bus.Read8(c.sp)
	c.sp++
	return bit.JoinLE(low, high)
}

// decodeError formats a fatal-abort diagnostic for an opcode not present
// in either table.
func decodeError(pc uint16, op uint8, cbPrefixed bool) string {
	if cbPrefixed {
		return fmt.Sprintf("cpu: unknown CB opcode 0x%02X at pc=0x%04X", op, pc)
	}
	return fmt.Sprintf("cpu: unknown opcode 0x%02X at pc=0x%04X", op, pc)
}

var illegalOpcodes = map[uint8]bool{
	0xD3: true, 0xDB: true, 0xDD: true,
	0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
	0xF4: true, 0xFC: true, 0xFD: true,
}

// ensure memory.MMU satisfies bus so callers can pass it directly
// without an explicit interface conversion.
var _ bus = (*memory.MMU)(nil)

// interruptSources lists the five interrupt sources in priority order,
// highest first.
var interruptSources = [5]addr.Interrupt{
	addr.VBlankInterrupt,
	addr.LCDSTATInterrupt,
	addr.TimerInterrupt,
	addr.SerialInterrupt,
	addr.JoypadInterrupt,
}
