package debug

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
)

const (
	OVERLAY_COLUMNS = 4    // Registers per overlay line.
	CACHE_LIMIT     = 4096 // Cached entries before the cache is discarded.
)

type cellKey struct {
	name  string
	value uint16
}

type lineKey struct {
	addr uint16
	word uint16
}

// Overlay renders register and disassembly text for a running machine. It
// is safe to Observe from the emulator goroutine while another goroutine
// calls Lines.
type Overlay struct {
	mutex sync.Mutex

	state   cpu.State
	program []byte

	cells   map[cellKey]string
	lines   map[lineKey]string
	listing []string

	Hits   int // Cache hits.
	Misses int // Cache misses.
}

var _ emulator.Observer = (*Overlay)(nil)

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		cells: map[cellKey]string{},
		lines: map[lineKey]string{},
	}
}

// Observe records a copy of the machine state.
func (ov *Overlay) Observe(state cpu.State, program []byte) {
	ov.mutex.Lock()
	defer ov.mutex.Unlock()

	ov.state = state
	ov.program = append(ov.program[:0], program...)
}

func (ov *Overlay) cell(name string, value uint16) (text string) {
	key := cellKey{name: name, value: value}
	text, ok := ov.cells[key]
	if ok {
		ov.Hits++
		return
	}

	ov.Misses++
	if len(ov.cells) >= CACHE_LIMIT {
		clear(ov.cells)
	}

	switch name {
	case "i", "pc":
		text = fmt.Sprintf("%-2v %03x", name, value)
	default:
		text = fmt.Sprintf("%-2v %02x ", name, value)
	}
	ov.cells[key] = text

	return
}

func (ov *Overlay) line(addr, word uint16) (text string) {
	key := lineKey{addr: addr, word: word}
	text, ok := ov.lines[key]
	if ok {
		ov.Hits++
		return
	}

	ov.Misses++
	if len(ov.lines) >= CACHE_LIMIT {
		clear(ov.lines)
	}

	text = Disassemble(addr, word).String()
	ov.lines[key] = text

	return
}

// Registers returns the register lines.
func (ov *Overlay) Registers() (lines []string) {
	ov.mutex.Lock()
	defer ov.mutex.Unlock()

	return ov.registers()
}

func (ov *Overlay) registers() (lines []string) {
	var row []string
	for name, value := range ov.state.Registers() {
		row = append(row, ov.cell(name, value))
		if len(row) == OVERLAY_COLUMNS {
			lines = append(lines, strings.Join(row, " "))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, " "))
	}

	return
}

// Listing returns up to rows lines of disassembly around the program
// counter. The line at the program counter is marked with '>'.
func (ov *Overlay) Listing(rows int) (lines []string) {
	ov.mutex.Lock()
	defer ov.mutex.Unlock()

	return ov.window(rows)
}

func (ov *Overlay) window(rows int) (lines []string) {
	words := Words(ov.program)
	if len(ov.listing) != words {
		ov.listing = make([]string, words)
	}

	for n := range ov.listing {
		addr := uint16(cpu.PROGRAM_START + n*2)
		word := Word(ov.program, n)
		ov.listing[n] = ov.line(addr, word)
	}

	current := (int(ov.state.Pc) - cpu.PROGRAM_START) / 2
	start := max(min(current-rows/2, words-rows), 0)
	end := min(start+rows, words)

	for n := start; n < end; n++ {
		mark := "  "
		if n == current {
			mark = "> "
		}
		lines = append(lines, mark+ov.listing[n])
	}

	return
}

// Lines returns the register lines, a blank line, then the listing.
func (ov *Overlay) Lines(rows int) (lines []string) {
	ov.mutex.Lock()
	defer ov.mutex.Unlock()

	lines = ov.registers()
	if ov.state.Awaiting {
		lines = append(lines, fmt.Sprintf("wait v%x", ov.state.Target))
	}
	lines = append(lines, "")
	lines = append(lines, ov.window(rows)...)

	return
}
