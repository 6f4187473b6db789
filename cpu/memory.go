package cpu

const (
	MEMORY_SIZE   = 0x1000                      // Addressable memory, in bytes.
	MEMORY_MASK   = MEMORY_SIZE - 1             // Address wrap mask.
	PROGRAM_START = 0x200                       // Load address of programs.
	PROGRAM_LIMIT = MEMORY_SIZE - PROGRAM_START // Largest loadable program.
	GLYPH_SIZE    = 5                           // Bytes per glyph.
)

// Hexadecimal digit glyphs, 4x5 pixels, resident at address 0.
var _glyphs = [16 * GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte store of the machine.
type Memory struct {
	Data [MEMORY_SIZE]byte
	Size int // Length of the loaded program.
}

// Reset zeroes memory and installs the glyph table.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
	copy(mem.Data[:], _glyphs[:])
	mem.Size = 0
}

// Load copies a program image to PROGRAM_START.
// Nothing is written if the image does not fit.
func (mem *Memory) Load(rom []byte) (err error) {
	if len(rom) > PROGRAM_LIMIT {
		err = ErrRomSize(len(rom))
		return
	}

	clear(mem.Data[PROGRAM_START:])
	copy(mem.Data[PROGRAM_START:], rom)
	mem.Size = len(rom)

	return
}

// Read a byte. Addresses wrap at MEMORY_SIZE.
func (mem *Memory) Read(addr uint16) byte {
	return mem.Data[addr&MEMORY_MASK]
}

// Write a byte. Addresses wrap at MEMORY_SIZE.
func (mem *Memory) Write(addr uint16, value byte) {
	mem.Data[addr&MEMORY_MASK] = value
}

// Word reads the big-endian 16-bit value at addr.
func (mem *Memory) Word(addr uint16) uint16 {
	return uint16(mem.Read(addr))<<8 | uint16(mem.Read(addr+1))
}

// View returns a copy of memory in [from, to).
func (mem *Memory) View(from, to uint16) (view []byte) {
	if to > MEMORY_SIZE {
		to = MEMORY_SIZE
	}
	if from >= to {
		return
	}

	view = make([]byte, to-from)
	copy(view, mem.Data[from:to])
	return
}

// Program returns a copy of the loaded program bytes.
func (mem *Memory) Program() []byte {
	return mem.View(PROGRAM_START, uint16(PROGRAM_START+mem.Size))
}
