package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoypad_unusedUpperBitsPinnedHigh(t *testing.T) {
	j := NewJoypad()

	assert.Equal(t, uint8(0xCF), j.Read())
}

func TestJoypad_writeOnlyAffectsSelectionBits(t *testing.T) {
	j := NewJoypad()

	j.Write(0xFF)

	assert.Equal(t, uint8(0xFF), j.Read())
}

func TestJoypad_viaMMU(t *testing.T) {
	m := New(nil, nil)

	m.Write8(0xFF00, 0x10)
	got := m.Read8(0xFF00)

	assert.Equal(t, uint8(0xDF), got)
}
