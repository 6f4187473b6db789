// Package debug provides disassembly and the register overlay of a running
// machine.
package debug

import (
	"fmt"
	"math/bits"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"

	"github.com/ezrec/chip8/cpu"
)

// Line is one disassembled instruction word.
type Line struct {
	Addr   uint16
	Word   uint16
	Name   string // Mnemonic, empty if the word is not an instruction.
	Text   string // Assembly text.
	Skip   bool   // Conditionally skips the next instruction.
	Reads  bool   // Instruction family may read memory.
	Writes bool   // Instruction family may write memory.
}

// Lookup finds the instruction table entry for a word. When more than one
// entry matches, the one with the most specific mask wins.
func Lookup(word uint16) (op chip8.Opcode, ok bool) {
	best := -1
	for _, entry := range chip8.Opcodes[int(word>>12)] {
		if entry.Instruction == nil || entry.Info.Mask&word != entry.Info.Value {
			continue
		}
		if weight := bits.OnesCount16(uint16(entry.Info.Mask)); weight > best {
			best = weight
			op = entry
			ok = true
		}
	}

	return
}

// Disassemble a single instruction word.
func Disassemble(addr, word uint16) (line Line) {
	line = Line{Addr: addr, Word: word}

	op, ok := Lookup(word)
	if !ok {
		line.Text = fmt.Sprintf(".word 0x%04x", word)
		return
	}

	name := op.Instruction.Name
	line.Name = name
	line.Skip = chip8.SkipInstructions.Contains(name)
	line.Reads = chip8.MemoryReadInstructions.Contains(name)
	line.Writes = chip8.MemoryWriteInstructions.Contains(name)
	line.Text = cpu.Code(word).String()

	return
}

// Words returns the number of instruction words in a program image,
// counting a trailing odd byte as a word.
func Words(program []byte) int {
	return (len(program) + 1) / 2
}

// Word returns the n'th instruction word of a program image. A trailing odd
// byte reads with a zero low byte.
func Word(program []byte, n int) (word uint16) {
	word = uint16(program[n*2]) << 8
	if n*2+1 < len(program) {
		word |= uint16(program[n*2+1])
	}

	return
}

// Listing disassembles a program image loaded at PROGRAM_START.
func Listing(program []byte) (lines []Line) {
	for n := range Words(program) {
		lines = append(lines, Disassemble(uint16(cpu.PROGRAM_START+n*2), Word(program, n)))
	}

	return
}

func (line Line) String() string {
	text := fmt.Sprintf("%03x: %04x  %v", line.Addr, line.Word, line.Text)
	if line.Skip {
		text += " ; skip"
	}

	return text
}
