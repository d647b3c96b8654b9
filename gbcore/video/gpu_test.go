package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPU_vramReadWriteRoundTrip(t *testing.T) {
	g := NewGPU()

	g.WriteVRAM(0x0010, 0x42)

	assert.Equal(t, uint8(0x42), g.ReadVRAM(0x0010))
}

func TestGPU_writeBelowTileMapEdgeMarksTileDirty(t *testing.T) {
	g := NewGPU()

	g.WriteVRAM(0x0030, 0x01) // tile index 3 (0x30/16)

	dirty := g.DirtyTiles()

	assert.Contains(t, dirty, 3)
}

func TestGPU_writeToTileMapDoesNotMarkDirty(t *testing.T) {
	g := NewGPU()

	g.WriteVRAM(0x1900, 0x01) // inside tile map region, >= 0x1800

	dirty := g.DirtyTiles()

	assert.Empty(t, dirty)
}

func TestGPU_dirtyTilesClearsAfterRead(t *testing.T) {
	g := NewGPU()
	g.WriteVRAM(0x0000, 0x01)

	first := g.DirtyTiles()
	second := g.DirtyTiles()

	assert.Equal(t, []int{0}, first)
	assert.Empty(t, second)
}

func TestGPU_stepAccumulatesCycles(t *testing.T) {
	g := NewGPU()

	g.Step(40)
	g.Step(2)

	assert.Equal(t, 42, g.cycles)
}
