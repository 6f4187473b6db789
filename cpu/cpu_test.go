package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runCodes loads the instruction words as a program and executes them.
func runCodes(t *testing.T, cpu *Cpu, codes ...Code) {
	t.Helper()

	rom := make([]byte, 0, len(codes)*2)
	for _, code := range codes {
		rom = append(rom, byte(code>>8), byte(code))
	}

	err := cpu.Load(rom)
	assert.NoError(t, err)

	for range codes {
		err = cpu.Tick()
		assert.NoError(t, err)
	}
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	cpu.V[3] = 7
	cpu.I = 0x345
	cpu.Pc = 0x400
	cpu.Stack.Push(0x222)
	cpu.Timer.Delay = 9
	cpu.Keypad.SetKey(4, true)

	cpu.Reset()
	assert.Equal(uint8(0), cpu.V[3])
	assert.Equal(uint16(0), cpu.I)
	assert.Equal(uint16(PROGRAM_START), cpu.Pc)
	assert.True(cpu.Stack.Empty())
	assert.Equal(uint8(0), cpu.Timer.Delay)
	assert.False(cpu.Keypad.Pressed(4))
	assert.Equal(_glyphs[:], cpu.Memory.View(0, uint16(len(_glyphs))))
}

func TestCpu_Load(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	err := cpu.Load(make([]byte, PROGRAM_LIMIT))
	assert.NoError(err)

	cpu.V[0] = 0x55
	err = cpu.Load(make([]byte, PROGRAM_LIMIT+1))
	assert.ErrorIs(err, ErrRomTooLarge)
	assert.Equal(uint8(0x55), cpu.V[0])

	err = cpu.Load([]byte{0x12, 0x34})
	assert.NoError(err)
	assert.Equal([]byte{0x12, 0x34}, cpu.Memory.Program())
	assert.Equal(uint8(0), cpu.Memory.Read(PROGRAM_START+2))
}

func TestCpu_Alu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	for a := 0; a < 256; a++ {
		for _, b := range []int{0, 1, 0x7f, 0x80, 0xff, a} {
			va, vb := uint8(a), uint8(b)

			cpu.V[1], cpu.V[2] = va, vb
			assert.NoError(cpu.Execute(0x8124))
			assert.Equal(va+vb, cpu.V[1])
			assert.Equal(flag(a+b > 0xff), cpu.V[0xf])

			cpu.V[1], cpu.V[2] = va, vb
			assert.NoError(cpu.Execute(0x8125))
			assert.Equal(va-vb, cpu.V[1])
			assert.Equal(flag(a >= b), cpu.V[0xf])

			cpu.V[1], cpu.V[2] = va, vb
			assert.NoError(cpu.Execute(0x8127))
			assert.Equal(vb-va, cpu.V[1])
			assert.Equal(flag(b >= a), cpu.V[0xf])
		}

		va := uint8(a)

		cpu.V[1] = va
		assert.NoError(cpu.Execute(0x8106))
		assert.Equal(va>>1, cpu.V[1])
		assert.Equal(va&1, cpu.V[0xf])

		cpu.V[1] = va
		assert.NoError(cpu.Execute(0x810e))
		assert.Equal(va<<1, cpu.V[1])
		assert.Equal(va>>7, cpu.V[0xf])
	}
}

func TestCpu_AluFlagLast(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	// add vf, v1: the flag overwrites the sum.
	cpu.V[0xf] = 0xff
	cpu.V[1] = 0x02
	assert.NoError(cpu.Execute(0x8f14))
	assert.Equal(uint8(1), cpu.V[0xf])

	cpu.V[0xf] = 0x10
	cpu.V[1] = 0x01
	assert.NoError(cpu.Execute(0x8f15))
	assert.Equal(uint8(1), cpu.V[0xf])
}

func TestCpu_Logic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		code   Code
		result uint8
	}){
		{"ld", 0x8120, 0x0f},
		{"or", 0x8121, 0x3f},
		{"and", 0x8122, 0x0c},
		{"xor", 0x8123, 0x33},
	}

	for _, entry := range table {
		cpu := NewCpu(1)
		cpu.V[1] = 0x3c
		cpu.V[2] = 0x0f
		cpu.V[0xf] = 0x42
		assert.NoError(cpu.Execute(entry.code), entry.name)
		assert.Equal(entry.result, cpu.V[1], entry.name)
		assert.Equal(uint8(0x42), cpu.V[0xf], entry.name)
	}
}

func TestCpu_Skip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		skip bool
	}){
		{"se_imm", 0x3105, true},
		{"se_imm_no", 0x3106, false},
		{"sne_imm", 0x4106, true},
		{"sne_imm_no", 0x4105, false},
		{"se_reg", 0x5120, false},
		{"se_reg_eq", 0x5130, true},
		{"sne_reg", 0x9120, true},
		{"sne_reg_eq", 0x9130, false},
		{"skp", 0xe19e, true},
		{"skp_no", 0xe29e, false},
		{"sknp", 0xe2a1, true},
		{"sknp_no", 0xe1a1, false},
	}

	for _, entry := range table {
		cpu := NewCpu(1)
		cpu.V[1] = 5
		cpu.V[2] = 6
		cpu.V[3] = 5
		cpu.Keypad.SetKey(5, true)

		assert.NoError(cpu.Execute(entry.code), entry.name)
		expected := uint16(PROGRAM_START + 2)
		if entry.skip {
			expected += 2
		}
		assert.Equal(expected, cpu.Pc, entry.name)
	}
}

func TestCpu_Jump(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	assert.NoError(cpu.Execute(0x1456))
	assert.Equal(uint16(0x456), cpu.Pc)

	cpu.V[0] = 0x10
	assert.NoError(cpu.Execute(0xb300))
	assert.Equal(uint16(0x310), cpu.Pc)
}

func TestCpu_CallReturn(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	for n := 0; n < STACK_LIMIT; n++ {
		cpu.Pc = 0x300
		assert.NoError(cpu.Execute(0x2300))
	}
	assert.Equal(STACK_LIMIT, cpu.Stack.Sp)

	cpu.Pc = 0x300
	err := cpu.Execute(0x2300)
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(uint16(0x300), cpu.Pc)

	assert.NoError(cpu.Execute(0x00ee))
	assert.Equal(uint16(0x302), cpu.Pc)

	cpu.Stack.Reset()
	err = cpu.Execute(0x00ee)
	assert.ErrorIs(err, ErrStackUnderflow)

	var op *ErrOpcode
	assert.True(errors.As(err, &op))
	assert.Equal(Code(0x00ee), op.Code)
}

func TestCpu_Bcd(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value  uint8
		digits []byte
	}){
		{0, []byte{0, 0, 0}},
		{123, []byte{1, 2, 3}},
		{255, []byte{2, 5, 5}},
		{7, []byte{0, 0, 7}},
	}

	for _, entry := range table {
		cpu := NewCpu(1)
		cpu.I = 0x300
		cpu.V[4] = entry.value
		assert.NoError(cpu.Execute(0xf433))
		assert.Equal(entry.digits, cpu.Memory.View(0x300, 0x303))
		assert.Equal(uint16(0x300), cpu.I)
	}
}

func TestCpu_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	for n := range cpu.V {
		cpu.V[n] = uint8(n * 3)
	}
	cpu.I = 0x400

	assert.NoError(cpu.Execute(0xf755))
	assert.Equal(uint16(0x400), cpu.I)
	assert.Equal(uint8(0), cpu.Memory.Read(0x408))

	clear(cpu.V[:])
	assert.NoError(cpu.Execute(0xf765))
	assert.Equal(uint16(0x400), cpu.I)
	for n := 0; n <= 7; n++ {
		assert.Equal(uint8(n*3), cpu.V[n])
	}
	assert.Equal(uint8(0), cpu.V[8])
}

func TestCpu_StoreLoadProgram(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	assert.NoError(cpu.Load([]byte{
		0x60, 0x05, // ld v0, 0x05
		0xf0, 0x1e, // add i, v0
		0xa3, 0x00, // ld i, 0x300
		0xf0, 0x55, // ld [i], v0
		0x60, 0x00, // ld v0, 0x00
		0xf0, 0x65, // ld v0, [i]
	}))

	for range 6 {
		assert.NoError(cpu.Tick())
	}

	assert.Equal(uint16(0x20c), cpu.Pc)
	assert.Equal(uint16(0x300), cpu.I)
	assert.Equal(uint8(5), cpu.V[0])
	assert.Equal(uint8(5), cpu.Memory.Read(0x300))
	assert.Equal(6, cpu.Ticks)
}

func TestCpu_Index(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	assert.NoError(cpu.Execute(0xa123))
	assert.Equal(uint16(0x123), cpu.I)

	cpu.I = 0xffff
	cpu.V[2] = 2
	assert.NoError(cpu.Execute(0xf21e))
	assert.Equal(uint16(1), cpu.I)

	cpu.V[2] = 0xb
	assert.NoError(cpu.Execute(0xf229))
	assert.Equal(uint16(0xb*GLYPH_SIZE), cpu.I)
}

func TestCpu_Timers(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	cpu.V[1] = 30
	cpu.V[2] = 40
	assert.NoError(cpu.Execute(0xf115))
	assert.NoError(cpu.Execute(0xf218))
	assert.Equal(uint8(30), cpu.Timer.Delay)
	assert.Equal(uint8(40), cpu.Timer.Sound)

	cpu.Timer.Tick()
	assert.NoError(cpu.Execute(0xf307))
	assert.Equal(uint8(29), cpu.V[3])
}

func TestCpu_Random(t *testing.T) {
	assert := assert.New(t)

	a := NewCpu(42)
	b := NewCpu(42)
	for range 32 {
		assert.NoError(a.Execute(0xc10f))
		assert.NoError(b.Execute(0xc10f))
		assert.Equal(a.V[1], b.V[1])
		assert.Equal(uint8(0), a.V[1]&0xf0)
	}

	assert.NoError(a.Execute(0xc100))
	assert.Equal(uint8(0), a.V[1])
}

func TestCpu_Draw(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	// Glyph "0" at (0, 0), twice.
	cpu.V[1] = 0
	cpu.V[2] = 0
	cpu.I = 0
	assert.NoError(cpu.Execute(0xd125))
	assert.Equal(uint8(0), cpu.V[0xf])
	assert.Equal(14, cpu.Display.Lit())

	assert.NoError(cpu.Execute(0xd125))
	assert.Equal(uint8(1), cpu.V[0xf])
	assert.Equal(0, cpu.Display.Lit())

	// Zero rows draws nothing.
	assert.NoError(cpu.Execute(0xd120))
	assert.Equal(uint8(0), cpu.V[0xf])

	assert.NoError(cpu.Execute(0xd125))
	assert.NoError(cpu.Execute(0x00e0))
	assert.Equal(0, cpu.Display.Lit())
}

func TestCpu_WaitKey(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	err := cpu.Load([]byte{0xf3, 0x0a, 0x12, 0x02})
	assert.NoError(err)

	for range 3 {
		assert.NoError(cpu.Tick())
		assert.True(cpu.Awaiting)
		assert.Equal(3, cpu.Target)
		assert.Equal(uint16(PROGRAM_START), cpu.Pc)
	}

	cpu.Keypad.SetKey(0xa, true)
	assert.NoError(cpu.Tick())
	assert.False(cpu.Awaiting)
	assert.Equal(uint8(0xa), cpu.V[3])
	assert.Equal(uint16(PROGRAM_START+2), cpu.Pc)
}

func TestCpu_Unknown(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		code  Code
		class error
	}){
		{"sys", 0x0123, ErrOpcodeSys},
		{"alu", 0x8128, ErrOpcodeAlu},
		{"se_reg", 0x5121, ErrOpcodeUnknown},
		{"key", 0xe100, ErrOpcodeKey},
		{"misc", 0xf1ff, ErrOpcodeMisc},
	}

	for _, entry := range table {
		cpu := NewCpu(1)
		err := cpu.Execute(entry.code)
		assert.ErrorIs(err, ErrOpcodeUnknown, entry.name)
		assert.ErrorIs(err, entry.class, entry.name)
		assert.Equal(uint16(PROGRAM_START+2), cpu.Pc, entry.name)
	}
}

func TestCpu_PcRange(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	for _, pc := range []uint16{0x1ff, 0x201, 0x100, 0xfff, 0x1000} {
		cpu.Pc = pc
		_, err := cpu.FetchCode()
		assert.ErrorIs(err, ErrPcRange, "pc 0x%x", pc)
	}

	cpu.Pc = 0xffe
	_, err := cpu.FetchCode()
	assert.NoError(err)
}

func TestCpu_Program(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)

	// ld v0, 3; ld v1, 4; add v0, v1; ld i, 0x300; ld b, v0
	runCodes(t, cpu, 0x6003, 0x6104, 0x8014, 0xa300, 0xf033)
	assert.Equal(uint8(7), cpu.V[0])
	assert.Equal([]byte{0, 0, 7}, cpu.Memory.View(0x300, 0x303))
	assert.Equal(5, cpu.Ticks)

	state := cpu.State()
	assert.Equal(cpu.Pc, state.Pc)
	assert.Contains(cpu.String(), "v0=0x7")
	assert.Contains(cpu.String(), "i=0x300")
}

func TestState_Registers(t *testing.T) {
	assert := assert.New(t)

	state := State{I: 0x123, Sp: 2}
	state.V[0xa] = 0x42
	state.Stack[0] = 0x202
	state.Stack[1] = 0x304

	found := map[string]uint16{}
	var names []string
	for name, value := range state.Registers() {
		found[name] = value
		names = append(names, name)
	}

	assert.Equal(21, len(names))
	assert.Equal("v0", names[0])
	assert.Equal(uint16(0x42), found["va"])
	assert.Equal(uint16(0x123), found["i"])
	assert.Equal([]uint16{0x202, 0x304}, state.CallStack())
}

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code  Code
		class CodeClass
		ins   Instruction
		name  string
	}){
		{0x00e0, OP_SYS, INS_CLS, "cls"},
		{0x0123, OP_SYS, INS_SYS, "sys"},
		{0x5121, OP_SER, INS_UNKNOWN, "???"},
		{0x8126, OP_ALU, INS_SHR, "shr"},
		{0x8128, OP_ALU, INS_UNKNOWN, "???"},
		{0xe19e, OP_KEY, INS_SKP, "skp"},
		{0xf155, OP_MISC, INS_STORE, "ld"},
		{0xf1ff, OP_MISC, INS_UNKNOWN, "???"},
	}

	for _, entry := range table {
		assert.Equal(entry.class, entry.code.Class(), entry.code.String())
		assert.Equal(entry.ins, entry.code.Decode(), entry.code.String())
		assert.Equal(entry.name, entry.ins.String())
	}

	assert.Equal("alu", OP_ALU.String())
	assert.Equal("misc", OP_MISC.String())
	assert.Equal("CodeClass(16)", CodeClass(OP_CLASS).String())
	assert.Equal("Instruction(-1)", Instruction(-1).String())
}
