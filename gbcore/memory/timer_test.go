package memory

import (
	"testing"

	"github.com/mwillard/gbcore/gbcore/addr"
	"github.com/stretchr/testify/assert"
)

func TestTimer_divIncrementsIndependentlyOfTAC(t *testing.T) {
	tm := NewTimer()

	tm.Tick(256)

	assert.Equal(t, uint8(1), tm.Read(addr.DIV))
}

func TestTimer_writeToDIVResetsItRegardlessOfValue(t *testing.T) {
	tm := NewTimer()
	tm.Tick(256 * 5)

	tm.Write(addr.DIV, 0xFF)

	assert.Equal(t, uint8(0), tm.Read(addr.DIV))
}

func TestTimer_timaDisabledWhenTACBit2Clear(t *testing.T) {
	tm := NewTimer()
	tm.Write(addr.TAC, 0x03) // rate selected, but enable bit (2) clear

	tm.Tick(10_000)

	assert.Equal(t, uint8(0), tm.Read(addr.TIMA))
}

func TestTimer_timaOverflowReloadsFromTMAAndRaisesInterrupt(t *testing.T) {
	tm := NewTimer()
	requested := false
	tm.RequestInterrupt = func() { requested = true }

	tm.Write(addr.TAC, 0x05) // enabled, 01 -> 262144 Hz (16 cycles/tick)
	tm.Write(addr.TMA, 0xFE)
	tm.Write(addr.TIMA, 0xFF)

	tm.Tick(16)

	assert.Equal(t, uint8(0xFE), tm.Read(addr.TIMA))
	assert.True(t, requested)
}

func TestTimer_timaIncrementsAtSelectedRate(t *testing.T) {
	tm := NewTimer()
	tm.Write(addr.TAC, 0x04) // enabled, 00 -> 4096 Hz (1024 cycles/tick)

	tm.Tick(1023)
	assert.Equal(t, uint8(0), tm.Read(addr.TIMA))

	tm.Tick(1)
	assert.Equal(t, uint8(1), tm.Read(addr.TIMA))
}
