package memory

import (
	"github.com/mwillard/gbcore/gbcore/addr"
	"github.com/mwillard/gbcore/gbcore/bit"
)

const (
	wramSize = 0x2000 // 0xC000-0xDFFF
	oamSize  = 0x100  // 0xFE00-0xFEFF
	ioSize   = 0x80   // 0xFF00-0xFF7F, minus the slices handled specially below
	hramSize = 0x7F   // 0xFF80-0xFFFE
	extRAMSz = 0x2000 // 0xA000-0xBFFF
)

// GPU is the memory router's view of the video subsystem: VRAM access is
// delegated to it, and it receives the cycle count consumed by every
// step so it can advance its own internal state.
type GPU interface {
	ReadVRAM(offset uint16) byte
	WriteVRAM(offset uint16, value byte)
	Step(cycles int)
}

// flatVRAM is the GPU used when the caller doesn't wire a real one: a
// trivial stub sufficient for running CPU test ROMs that poke at VRAM
// without needing pixel output.
type flatVRAM struct {
	data [0x2000]byte
}

func (g *flatVRAM) ReadVRAM(offset uint16) byte         { return g.data[offset] }
func (g *flatVRAM) WriteVRAM(offset uint16, value byte) { g.data[offset] = value }
func (g *flatVRAM) Step(cycles int)                     {}

// MMU demultiplexes the 16-bit address space across the cartridge, VRAM,
// work RAM, echo RAM, OAM, I/O registers, HRAM, and IE.
type MMU struct {
	cart *Cartridge
	gpu  GPU

	extRAM [extRAMSz]byte
	wram   [wramSize]byte
	oam    [oamSize]byte
	io     [ioSize]byte
	hram   [hramSize]byte

	timer  *Timer
	joypad *Joypad

	ie byte
}

// New creates an MMU around the given cartridge. A nil gpu installs a
// trivial flat-buffer stand-in.
func New(cart *Cartridge, gpu GPU) *MMU {
	if cart == nil {
		cart = NewBlankCartridge()
	}
	if gpu == nil {
		gpu = &flatVRAM{}
	}

	m := &MMU{
		cart:   cart,
		gpu:    gpu,
		timer:  NewTimer(),
		joypad: NewJoypad(),
	}
	m.timer.RequestInterrupt = func() { m.RequestInterrupt(addr.TimerInterrupt) }

	return m
}

// Timer exposes the MMU's owned Timer sub-component.
func (m *MMU) Timer() *Timer {
	return m.timer
}

// Step forwards elapsed cycles to the timer and GPU.
func (m *MMU) Step(cycles int) {
	m.timer.Tick(cycles)
	m.gpu.Step(cycles)
}

// RequestInterrupt sets the corresponding bit of the IF register (0xFF0F).
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	current := m.Read8(addr.IF)
	m.Write8(addr.IF, current|uint8(interrupt))
}

// Read8 dispatches a single byte read by address range.
func (m *MMU) Read8(address uint16) byte {
	switch {
	case address <= addr.ROMEnd:
		return m.cart.read(address)
	case address <= addr.VRAMEnd:
		return m.gpu.ReadVRAM(address - addr.VRAMStart)
	case address <= addr.ExtRAMEnd:
		return m.extRAM[address-addr.ExtRAMStart]
	case address <= addr.WRAMEnd:
		return m.wram[address-addr.WRAMStart]
	case address <= addr.EchoEnd:
		return m.wram[address-addr.EchoStart]
	case address <= addr.OAMEnd:
		return m.oam[address-addr.OAMStart]
	case address == addr.P1:
		return m.joypad.Read()
	case address >= addr.DIV && address <= addr.TAC:
		return m.timer.Read(address)
	case address <= addr.IOEnd:
		return m.io[address-addr.IOStart]
	case address <= addr.HRAMEnd:
		return m.hram[address-addr.HRAMStart]
	case address == addr.IE:
		return m.ie
	default:
		return 0xFF
	}
}

// Write8 dispatches a single byte write by address range. Writes to VRAM
// below offset 0x1800 (tile data) trigger the GPU's tile-cache update.
func (m *MMU) Write8(address uint16, value byte) {
	switch {
	case address <= addr.ROMEnd:
		m.cart.write(address, value)
	case address <= addr.VRAMEnd:
		m.gpu.WriteVRAM(address-addr.VRAMStart, value)
	case address <= addr.ExtRAMEnd:
		m.extRAM[address-addr.ExtRAMStart] = value
	case address <= addr.WRAMEnd:
		m.wram[address-addr.WRAMStart] = value
	case address <= addr.EchoEnd:
		m.wram[address-addr.EchoStart] = value
	case address <= addr.OAMEnd:
		m.oam[address-addr.OAMStart] = value
	case address == addr.P1:
		m.joypad.Write(value)
	case address >= addr.DIV && address <= addr.TAC:
		m.timer.Write(address, value)
	case address <= addr.IOEnd:
		m.io[address-addr.IOStart] = value
	case address <= addr.HRAMEnd:
		m.hram[address-addr.HRAMStart] = value
	case address == addr.IE:
		m.ie = value
	}
}

// Read16 reads a little-endian word: low byte at address, high byte at
// address+1.
func (m *MMU) Read16(address uint16) uint16 {
	return bit.JoinLE(m.Read8(address), m.Read8(address+1))
}

// Write16 writes a little-endian word: low byte at address, high byte at
// address+1.
func (m *MMU) Write16(address uint16, value uint16) {
	low, high := bit.SplitLE(value)
	m.Write8(address, low)
	m.Write8(address+1, high)
}
