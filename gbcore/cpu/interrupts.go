package cpu

import "github.com/mwillard/gbcore/gbcore/addr"

// tickDelayedIME applies the one-instruction delay for EI/DI: every
// step, before opcode dispatch, each pending countdown decrements, and
// the IME change is applied the step it reaches zero.
func (c *CPU) tickDelayedIME() {
	if c.eiPending > 0 {
		c.eiPending--
		if c.eiPending == 0 {
			c.interruptsEnabled = true
		}
	}
	if c.diPending > 0 {
		c.diPending--
		if c.diPending == 0 {
			c.interruptsEnabled = false
		}
	}
}

// handleInterrupts services the highest-priority pending, enabled
// interrupt: if IME and a pending interrupt exist, it clears the IF
// bit, disables IME, and vectors to the handler. A pending interrupt
// still clears HALT even when IME is false, without vectoring. Returns
// true only when an interrupt was actually serviced (vectored), letting
// Step() charge 16 cycles.
func (c *CPU) handleInterrupts() bool {
	ie := c.bus.Read8(addr.IE)
	iflag := c.bus.Read8(addr.IF)
	pending := ie & iflag

	if pending == 0 {
		return false
	}

	if c.halted {
		c.halted = false
	}

	if !c.interruptsEnabled {
		return false
	}

	for _, src := range interruptSources {
		if pending&uint8(src) == 0 {
			continue
		}

		c.bus.Write8(addr.IF, iflag&^uint8(src))
		c.interruptsEnabled = false
		c.pushStack(c.pc)
		c.pc = src.Vector()
		return true
	}

	return false
}

func (c *CPU) serviceInterrupt() bool {
	return c.handleInterrupts()
}
