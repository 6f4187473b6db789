package cpu

import (
	"fmt"
)

// CodeClass is the top nibble of an instruction word.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_SYS   = CodeClass(0x0) // sys
	OP_JP    = CodeClass(0x1) // jp
	OP_CALL  = CodeClass(0x2) // call
	OP_SE    = CodeClass(0x3) // se
	OP_SNE   = CodeClass(0x4) // sne
	OP_SER   = CodeClass(0x5) // se
	OP_LD    = CodeClass(0x6) // ld
	OP_ADD   = CodeClass(0x7) // add
	OP_ALU   = CodeClass(0x8) // alu
	OP_SNER  = CodeClass(0x9) // sne
	OP_LDI   = CodeClass(0xa) // ld
	OP_JPV0  = CodeClass(0xb) // jp
	OP_RND   = CodeClass(0xc) // rnd
	OP_DRW   = CodeClass(0xd) // drw
	OP_KEY   = CodeClass(0xe) // key
	OP_MISC  = CodeClass(0xf) // misc
	OP_CLASS = 16
)

// Instruction identifies one entry of the instruction table.
type Instruction int

//go:generate go tool stringer -linecomment -type=Instruction
const (
	INS_UNKNOWN  = Instruction(iota) // ???
	INS_SYS                          // sys
	INS_CLS                          // cls
	INS_RET                          // ret
	INS_JP                           // jp
	INS_CALL                         // call
	INS_SE_IMM                       // se
	INS_SNE_IMM                      // sne
	INS_SE_REG                       // se
	INS_LD_IMM                       // ld
	INS_ADD_IMM                      // add
	INS_LD_REG                       // ld
	INS_OR                           // or
	INS_AND                          // and
	INS_XOR                          // xor
	INS_ADD_REG                      // add
	INS_SUB                          // sub
	INS_SHR                          // shr
	INS_SUBN                         // subn
	INS_SHL                          // shl
	INS_SNE_REG                      // sne
	INS_LD_I                         // ld
	INS_JP_V0                        // jp
	INS_RND                          // rnd
	INS_DRW                          // drw
	INS_SKP                          // skp
	INS_SKNP                         // sknp
	INS_LD_VX_DT                     // ld
	INS_LD_VX_K                      // ld
	INS_LD_DT_VX                     // ld
	INS_LD_ST_VX                     // ld
	INS_ADD_I                        // add
	INS_LD_F                         // ld
	INS_LD_B                         // ld
	INS_STORE                        // ld
	INS_LOAD                         // ld
	INS_COUNT
)

// _alu_ops maps the low nibble of an 8xyN word.
var _alu_ops = [16]Instruction{
	0x0: INS_LD_REG,
	0x1: INS_OR,
	0x2: INS_AND,
	0x3: INS_XOR,
	0x4: INS_ADD_REG,
	0x5: INS_SUB,
	0x6: INS_SHR,
	0x7: INS_SUBN,
	0xe: INS_SHL,
}

// _misc_ops maps the low byte of an FxNN word.
var _misc_ops = map[uint8]Instruction{
	0x07: INS_LD_VX_DT,
	0x0a: INS_LD_VX_K,
	0x15: INS_LD_DT_VX,
	0x18: INS_LD_ST_VX,
	0x1e: INS_ADD_I,
	0x29: INS_LD_F,
	0x33: INS_LD_B,
	0x55: INS_STORE,
	0x65: INS_LOAD,
}

// Code is a single 16-bit instruction word.
type Code uint16

// Class returns the top nibble of the word.
func (code Code) Class() CodeClass {
	return CodeClass(code >> 12)
}

// X returns the first register operand.
func (code Code) X() int {
	return int(code>>8) & 0xf
}

// Y returns the second register operand.
func (code Code) Y() int {
	return int(code>>4) & 0xf
}

// N returns the low nibble.
func (code Code) N() uint8 {
	return uint8(code) & 0xf
}

// NN returns the low byte.
func (code Code) NN() uint8 {
	return uint8(code)
}

// NNN returns the low 12 bits.
func (code Code) NNN() uint16 {
	return uint16(code) & 0xfff
}

// Decode the instruction word against the instruction table.
func (code Code) Decode() (ins Instruction) {
	switch code.Class() {
	case OP_SYS:
		switch code {
		case 0x00e0:
			ins = INS_CLS
		case 0x00ee:
			ins = INS_RET
		default:
			ins = INS_SYS
		}
	case OP_JP:
		ins = INS_JP
	case OP_CALL:
		ins = INS_CALL
	case OP_SE:
		ins = INS_SE_IMM
	case OP_SNE:
		ins = INS_SNE_IMM
	case OP_SER:
		if code.N() == 0 {
			ins = INS_SE_REG
		}
	case OP_LD:
		ins = INS_LD_IMM
	case OP_ADD:
		ins = INS_ADD_IMM
	case OP_ALU:
		ins = _alu_ops[code.N()]
	case OP_SNER:
		if code.N() == 0 {
			ins = INS_SNE_REG
		}
	case OP_LDI:
		ins = INS_LD_I
	case OP_JPV0:
		ins = INS_JP_V0
	case OP_RND:
		ins = INS_RND
	case OP_DRW:
		ins = INS_DRW
	case OP_KEY:
		switch code.NN() {
		case 0x9e:
			ins = INS_SKP
		case 0xa1:
			ins = INS_SKNP
		}
	case OP_MISC:
		ins = _misc_ops[code.NN()]
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	ins := code.Decode()
	name := ins.String()
	x := code.X()
	y := code.Y()

	switch ins {
	case INS_UNKNOWN:
		out = fmt.Sprintf(".word 0x%04x", uint16(code))
	case INS_CLS, INS_RET:
		out = name
	case INS_SYS, INS_JP, INS_CALL:
		out = fmt.Sprintf("%v 0x%03x", name, code.NNN())
	case INS_SE_IMM, INS_SNE_IMM, INS_LD_IMM, INS_ADD_IMM, INS_RND:
		out = fmt.Sprintf("%v v%x, 0x%02x", name, x, code.NN())
	case INS_SE_REG, INS_SNE_REG, INS_LD_REG, INS_OR, INS_AND, INS_XOR,
		INS_ADD_REG, INS_SUB, INS_SUBN:
		out = fmt.Sprintf("%v v%x, v%x", name, x, y)
	case INS_SHR, INS_SHL, INS_SKP, INS_SKNP:
		out = fmt.Sprintf("%v v%x", name, x)
	case INS_LD_I:
		out = fmt.Sprintf("%v i, 0x%03x", name, code.NNN())
	case INS_JP_V0:
		out = fmt.Sprintf("%v v0, 0x%03x", name, code.NNN())
	case INS_DRW:
		out = fmt.Sprintf("%v v%x, v%x, %d", name, x, y, code.N())
	case INS_LD_VX_DT:
		out = fmt.Sprintf("%v v%x, dt", name, x)
	case INS_LD_VX_K:
		out = fmt.Sprintf("%v v%x, k", name, x)
	case INS_LD_DT_VX:
		out = fmt.Sprintf("%v dt, v%x", name, x)
	case INS_LD_ST_VX:
		out = fmt.Sprintf("%v st, v%x", name, x)
	case INS_ADD_I:
		out = fmt.Sprintf("%v i, v%x", name, x)
	case INS_LD_F:
		out = fmt.Sprintf("%v f, v%x", name, x)
	case INS_LD_B:
		out = fmt.Sprintf("%v b, v%x", name, x)
	case INS_STORE:
		out = fmt.Sprintf("%v [i], v%x", name, x)
	case INS_LOAD:
		out = fmt.Sprintf("%v v%x, [i]", name, x)
	}

	return
}
