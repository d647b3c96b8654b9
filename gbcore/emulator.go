// Package gbcore wires the register file, interrupt controller, timer,
// memory router, and CPU decoder/executor into a runnable machine and
// drives the dispatcher loop at frame granularity.
package gbcore

import (
	"fmt"
	"log/slog"

	"github.com/mwillard/gbcore/gbcore/cpu"
	"github.com/mwillard/gbcore/gbcore/memory"
	"github.com/mwillard/gbcore/gbcore/video"
)

// cyclesPerFrame is the CPU cycle budget of one frame: 154 scanlines of
// 456 cycles each, so 4194304 Hz / 70224 gives about 59.73 frames/s.
const cyclesPerFrame = 70224

// Emulator is the root struct tying the CPU to its memory router and
// GPU collaborator, and driving Step at a frame granularity.
type Emulator struct {
	cpu *cpu.CPU
	mem *memory.MMU
	gpu *video.GPU

	instructionCount uint64
	frameCount       uint64
}

// New constructs an Emulator around a blank (zero-filled) cartridge,
// useful for running synthetic instruction sequences and tests.
func New() *Emulator {
	return newWithCartridge(memory.NewBlankCartridge())
}

// NewWithROM constructs an Emulator from a raw ROM image.
func NewWithROM(rom []byte) (*Emulator, error) {
	cart, err := memory.LoadCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("gbcore: loading cartridge: %w", err)
	}

	slog.Debug("loaded cartridge", "title", cart.Title(), "logo_valid", cart.LogoValid())

	return newWithCartridge(cart), nil
}

func newWithCartridge(cart *memory.Cartridge) *Emulator {
	gpu := video.NewGPU()
	mem := memory.New(cart, gpu)

	return &Emulator{
		cpu: cpu.New(mem),
		mem: mem,
		gpu: gpu,
	}
}

// Step executes exactly one CPU step and forwards its cycle count to
// the timer and GPU, returning the cycles consumed. Exposed for
// debuggers and single-step tests.
func (e *Emulator) Step() int {
	cycles := e.cpu.Step()
	e.mem.Step(cycles)
	e.instructionCount++
	return cycles
}

// RunFrame steps the CPU until the 70224-cycle frame budget is met or
// exceeded, and returns how many CPU steps were retired during the
// frame.
func (e *Emulator) RunFrame() int {
	steps := 0
	total := 0
	for total < cyclesPerFrame {
		total += e.Step()
		steps++
	}
	e.frameCount++

	if e.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", e.frameCount, "pc", fmt.Sprintf("0x%04X", e.cpu.GetPC()))
	}

	return steps
}

// CPU exposes the emulator's CPU for debuggers/tests.
func (e *Emulator) CPU() *cpu.CPU { return e.cpu }

// Memory exposes the emulator's memory router for debuggers/tests.
func (e *Emulator) Memory() *memory.MMU { return e.mem }

// GPU exposes the emulator's GPU collaborator for debuggers/tests.
func (e *Emulator) GPU() *video.GPU { return e.gpu }

// InstructionCount reports how many CPU steps have been retired since
// construction.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// FrameCount reports how many frames have been completed via RunFrame.
func (e *Emulator) FrameCount() uint64 { return e.frameCount }
