package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for class := range 0x10 {
		f.Add(uint16(class<<12), uint8(0), uint8(0), false)
		f.Add(uint16(class<<12|0xfff), uint8(0xff), uint8(0x80), true)
	}

	f.Fuzz(func(t *testing.T, opcode uint16, vx uint8, vy uint8, key bool) {
		assert := assert.New(t)

		cpu := NewCpu(1)
		code := Code(opcode)
		cpu.V[code.X()] = vx
		cpu.V[code.Y()] = vy
		cpu.I = 0x300
		cpu.Stack.Push(0x400)
		if key {
			cpu.Keypad.SetKey(int(vx&0xf), true)
		}

		before := cpu.State()
		err := cpu.Execute(code)

		switch {
		case err == nil:
		case errors.Is(err, ErrOpcodeUnknown):
			assert.Contains([]Instruction{INS_UNKNOWN, INS_SYS}, code.Decode())
			assert.Equal(before.Pc+2, cpu.Pc)
			return
		case errors.Is(err, ErrStackOverflow), errors.Is(err, ErrStackUnderflow):
			assert.Equal(before.Pc, cpu.Pc)
			return
		default:
			t.Fatalf("%v: unexpected error %v", code, err)
		}

		ins := code.Decode()
		switch ins {
		case INS_JP, INS_CALL, INS_RET, INS_JP_V0:
		case INS_LD_VX_K:
			if key {
				assert.Equal(before.Pc+2, cpu.Pc, code.String())
			} else {
				assert.Equal(before.Pc, cpu.Pc, code.String())
			}
		default:
			assert.Contains([]uint16{before.Pc + 2, before.Pc + 4}, cpu.Pc, code.String())
			assert.Equal(before.Sp, cpu.Stack.Sp, code.String())
		}

		// The glyph table is never disturbed while I points past it.
		assert.Equal(_glyphs[:], cpu.Memory.View(0, uint16(len(_glyphs))), code.String())
	})
}
