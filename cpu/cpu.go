package cpu

import (
	"errors"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"

	"github.com/ezrec/chip8/io"
)

const (
	REGISTER_COUNT = 16  // V0-VF
	REGISTER_FLAG  = 0xf // VF, the carry/borrow/collision flag.
)

// Cpu is the simulation context for the CHIP-8 interpreter.
type Cpu struct {
	Verbose bool        // Set to enable instruction tracing.
	Logger  *log.Logger // Destination of the instruction trace.

	Memory   Memory                 // Program and data memory.
	V        [REGISTER_COUNT]uint8 // Register bank.
	I        uint16                 // Index register.
	Pc       uint16                 // Program counter.
	Stack    Stack                  // Return address stack.
	Awaiting bool                   // Set while blocked on a key press.
	Target   int                    // Register receiving the awaited key.

	Keypad  io.Keypad  // Keypad peripheral.
	Display io.Display // Display peripheral.
	Timer   io.Timer   // Delay and sound timers.

	Ticks int // Instructions executed since reset.

	random *rand.Rand
}

// NewCpu creates a new CPU, seeding the random number generator used by
// the rnd instruction.
func NewCpu(seed uint64) (cpu *Cpu) {
	cpu = &Cpu{
		random: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	cpu.Reset()

	return
}

// Devices returns the peripherals attached to the CPU.
func (cpu *Cpu) Devices() []io.Device {
	return []io.Device{&cpu.Keypad, &cpu.Display, &cpu.Timer}
}

// Reset the CPU state.
// - Clears the registers and stack.
// - Clears memory and installs the glyph table.
// - Resets all peripherals.
// - Sets the program counter to PROGRAM_START.
func (cpu *Cpu) Reset() {
	if cpu.Verbose && cpu.Logger != nil {
		cpu.Logger.Debug("cpu: reset")
	}

	clear(cpu.V[:])
	cpu.I = 0
	cpu.Pc = PROGRAM_START
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	cpu.Awaiting = false
	cpu.Target = 0
	cpu.Ticks = 0

	for _, device := range cpu.Devices() {
		device.Reset()
	}
}

// Load resets the CPU and loads a program image. If the image is too large
// the CPU state is left untouched.
func (cpu *Cpu) Load(rom []byte) (err error) {
	if len(rom) > PROGRAM_LIMIT {
		err = ErrRomSize(len(rom))
		return
	}

	cpu.Reset()

	err = cpu.Memory.Load(rom)
	if err != nil {
		return
	}

	if cpu.Verbose && cpu.Logger != nil {
		cpu.Logger.Debug("cpu: loaded", log.Int("size", len(rom)))
	}

	return
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if (cpu.Pc&1) != 0 || cpu.Pc < PROGRAM_START || cpu.Pc > MEMORY_SIZE-2 {
		err = &ErrOpcode{Pc: cpu.Pc, Err: ErrPcRange}
		return
	}

	code = Code(cpu.Memory.Word(cpu.Pc))
	return
}

// Tick executes a single instruction cycle. While waiting for a key the
// same instruction is executed again, and the program counter only moves
// once a key is held.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)

	return
}

// Execute executes a single decoded instruction at the current program
// counter. Unknown instructions return ErrOpcodeUnknown, but the program
// counter still advances past them.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrOpcode{Pc: pc, Code: code, Err: err}
		}
	}()

	if cpu.Verbose && cpu.Logger != nil {
		cpu.Logger.Debug("exec",
			log.Hex("pc", pc),
			log.Hex("opcode", uint16(code)),
			log.String("ins", code.String()))
	}

	next_pc := pc + 2

	x := code.X()
	y := code.Y()
	vx := cpu.V[x]
	vy := cpu.V[y]

	ins := code.Decode()
	switch ins {
	case INS_CLS:
		cpu.Display.Clear()
	case INS_RET:
		var addr uint16
		addr, err = cpu.Stack.Pop()
		if err != nil {
			return
		}
		next_pc = addr + 2
	case INS_JP:
		next_pc = code.NNN()
	case INS_CALL:
		err = cpu.Stack.Push(pc)
		if err != nil {
			return
		}
		next_pc = code.NNN()
	case INS_SE_IMM:
		if vx == code.NN() {
			next_pc += 2
		}
	case INS_SNE_IMM:
		if vx != code.NN() {
			next_pc += 2
		}
	case INS_SE_REG:
		if vx == vy {
			next_pc += 2
		}
	case INS_SNE_REG:
		if vx != vy {
			next_pc += 2
		}
	case INS_LD_IMM:
		cpu.V[x] = code.NN()
	case INS_ADD_IMM:
		cpu.V[x] = vx + code.NN()
	case INS_LD_REG, INS_OR, INS_AND, INS_XOR, INS_ADD_REG, INS_SUB, INS_SHR, INS_SUBN, INS_SHL:
		cpu.doAlu(ins, x, vx, vy)
	case INS_LD_I:
		cpu.I = code.NNN()
	case INS_JP_V0:
		next_pc = code.NNN() + uint16(cpu.V[0])
	case INS_RND:
		cpu.V[x] = uint8(cpu.random.Uint32()) & code.NN()
	case INS_DRW:
		rows := make([]byte, code.N())
		for n := range rows {
			rows[n] = cpu.Memory.Read(cpu.I + uint16(n))
		}
		cpu.V[REGISTER_FLAG] = flag(cpu.Display.Draw(int(vx), int(vy), rows))
	case INS_SKP:
		if cpu.Keypad.Pressed(vx) {
			next_pc += 2
		}
	case INS_SKNP:
		if !cpu.Keypad.Pressed(vx) {
			next_pc += 2
		}
	case INS_LD_VX_DT:
		cpu.V[x] = cpu.Timer.Delay
	case INS_LD_VX_K:
		key, ok := cpu.Keypad.FirstPressed()
		if !ok {
			// Don't advance to next PC.
			cpu.Awaiting = true
			cpu.Target = x
			next_pc = pc
			break
		}
		cpu.Awaiting = false
		cpu.V[x] = uint8(key)
	case INS_LD_DT_VX:
		cpu.Timer.Delay = vx
	case INS_LD_ST_VX:
		cpu.Timer.Sound = vx
	case INS_ADD_I:
		cpu.I += uint16(vx)
	case INS_LD_F:
		cpu.I = uint16(vx&0xf) * GLYPH_SIZE
	case INS_LD_B:
		cpu.Memory.Write(cpu.I, vx/100)
		cpu.Memory.Write(cpu.I+1, (vx/10)%10)
		cpu.Memory.Write(cpu.I+2, vx%10)
	case INS_STORE:
		for n := 0; n <= x; n++ {
			cpu.Memory.Write(cpu.I+uint16(n), cpu.V[n])
		}
	case INS_LOAD:
		for n := 0; n <= x; n++ {
			cpu.V[n] = cpu.Memory.Read(cpu.I + uint16(n))
		}
	case INS_SYS:
		err = errors.Join(ErrOpcodeUnknown, ErrOpcodeSys)
	default:
		switch code.Class() {
		case OP_ALU:
			err = errors.Join(ErrOpcodeUnknown, ErrOpcodeAlu)
		case OP_KEY:
			err = errors.Join(ErrOpcodeUnknown, ErrOpcodeKey)
		case OP_MISC:
			err = errors.Join(ErrOpcodeUnknown, ErrOpcodeMisc)
		default:
			err = ErrOpcodeUnknown
		}
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// doAlu performs a register-register operation, with VF written last.
func (cpu *Cpu) doAlu(ins Instruction, x int, vx, vy uint8) {
	var output uint8
	var vf uint8
	set_flag := true

	switch ins {
	case INS_LD_REG:
		output = vy
		set_flag = false
	case INS_OR:
		output = vx | vy
		set_flag = false
	case INS_AND:
		output = vx & vy
		set_flag = false
	case INS_XOR:
		output = vx ^ vy
		set_flag = false
	case INS_ADD_REG:
		sum := uint16(vx) + uint16(vy)
		output = uint8(sum)
		vf = flag(sum > 0xff)
	case INS_SUB:
		output = vx - vy
		vf = flag(vx >= vy)
	case INS_SUBN:
		output = vy - vx
		vf = flag(vy >= vx)
	case INS_SHR:
		output = vx >> 1
		vf = vx & 1
	case INS_SHL:
		output = vx << 1
		vf = vx >> 7
	}

	cpu.V[x] = output
	if set_flag {
		cpu.V[REGISTER_FLAG] = vf
	}
}

// State returns a copy of the register state.
func (cpu *Cpu) State() State {
	return State{
		V:        cpu.V,
		I:        cpu.I,
		Pc:       cpu.Pc,
		Sp:       cpu.Stack.Sp,
		Stack:    cpu.Stack.Data,
		Delay:    cpu.Timer.Delay,
		Sound:    cpu.Timer.Sound,
		Awaiting: cpu.Awaiting,
		Target:   cpu.Target,
		Ticks:    cpu.Ticks,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	state := cpu.State()
	return state.String()
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
