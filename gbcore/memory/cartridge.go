package memory

import "fmt"

const (
	romSize        = 0x8000
	logoAddress    = 0x0104
	logoLength     = 48
	titleAddress   = 0x0134
	titleLength    = 11
	minCartridgeSz = 0x8000
)

// nintendoLogo is the fixed 48-byte bitmap every licensed cartridge embeds
// at 0x0104-0x0133. Real hardware refuses to boot if this doesn't match;
// this core only exposes the check for callers that want to act on it.
var nintendoLogo = [logoLength]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Cartridge is a flat, bank-less ROM image addressed directly at
// 0x0000-0x7FFF. Mappers beyond this are out of scope for this core.
type Cartridge struct {
	data  [romSize]byte
	title string
}

// ErrROMTooSmall is returned by LoadCartridge when given fewer than 32 KiB.
var ErrROMTooSmall = fmt.Errorf("cartridge: ROM image smaller than %d bytes", minCartridgeSz)

// LoadCartridge builds a Cartridge from a raw ROM image. Images larger
// than 32 KiB are truncated to the first bank, since bank switching is
// not implemented by this core.
func LoadCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) < minCartridgeSz {
		return nil, ErrROMTooSmall
	}

	cart := &Cartridge{}
	copy(cart.data[:], rom)
	cart.title = extractTitle(rom)

	return cart, nil
}

// NewBlankCartridge returns a zero-filled cartridge, useful for tests and
// for running synthetic instruction sequences without a real ROM file.
func NewBlankCartridge() *Cartridge {
	return &Cartridge{}
}

func extractTitle(rom []byte) string {
	end := titleAddress + titleLength
	if len(rom) < end {
		return ""
	}

	raw := rom[titleAddress:end]
	n := len(raw)
	for i, b := range raw {
		if b == 0 {
			n = i
			break
		}
	}
	return string(raw[:n])
}

// Title returns the cartridge's header title (0x0134-0x013E), trimmed at
// the first NUL byte.
func (c *Cartridge) Title() string {
	return c.title
}

// LogoValid reports whether the embedded Nintendo logo bitmap matches the
// one every licensed cartridge carries.
func (c *Cartridge) LogoValid() bool {
	for i, want := range nintendoLogo {
		if c.data[logoAddress+i] != want {
			return false
		}
	}
	return true
}

func (c *Cartridge) read(address uint16) byte {
	return c.data[address]
}

// write allows mutation of the flat ROM image. Real mapper hardware
// would intercept this range for bank-select writes; a flat cartridge
// simply stores it, which is convenient for poking test fixtures.
func (c *Cartridge) write(address uint16, value byte) {
	c.data[address] = value
}
