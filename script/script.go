// Package script drives an emulator from a Starlark program.
//
// The following builtins are available to scripts:
//
//	step(n=1)        execute n instructions
//	tick(n=1)        perform n 60Hz timer ticks
//	frame(n=1)       run n frames: hz/60 instructions, one timer tick, present
//	press(key)       hold a keypad key
//	release(key)     release a keypad key
//	restart()        reload the program
//	reg(x)           value of Vx
//	pc(), index(), sp(), delay(), sound(), awaiting(), ticks(), tone()
//	mem(addr, n=1)   bytes of memory
//	pixel(x, y)      1 if the pixel is lit
//	screen()         the display as text
//	disasm(addr)     disassembly of the word at addr
//	check(cond, msg) fail the script unless cond is true
package script

import (
	"github.com/retroenv/retrogolib/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/chip8/debug"
	"github.com/ezrec/chip8/emulator"
)

// Runner executes scripts against an emulator.
type Runner struct {
	Emulator *emulator.Emulator
	Print    func(msg string) // Destination of print(); logs when nil.
	Logger   *log.Logger
}

// NewRunner creates a script runner for the emulator.
func NewRunner(emu *emulator.Emulator) *Runner {
	return &Runner{
		Emulator: emu,
		Logger:   emu.Logger,
	}
}

// Exec runs a script. src may be a string, []byte or nil to read the
// file. Returns the global variables of the script.
func (r *Runner) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			switch {
			case r.Print != nil:
				r.Print(msg)
			case r.Logger != nil:
				r.Logger.Info(msg, log.String("script", filename))
			}
		},
	}
	opts := syntax.FileOptions{}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, r.Builtins())
	return
}

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Builtins returns the predeclared names of a script.
func (r *Runner) Builtins() starlark.StringDict {
	funcs := map[string]builtinFunc{
		"step":     r.step,
		"tick":     r.tick,
		"frame":    r.frame,
		"press":    r.press,
		"release":  r.release,
		"restart":  r.restart,
		"reg":      r.reg,
		"pc":       r.value(func() int { return int(r.Emulator.Cpu.Pc) }),
		"index":    r.value(func() int { return int(r.Emulator.Cpu.I) }),
		"sp":       r.value(func() int { return r.Emulator.Cpu.Stack.Sp }),
		"delay":    r.value(func() int { return int(r.Emulator.Cpu.Timer.Delay) }),
		"sound":    r.value(func() int { return int(r.Emulator.Cpu.Timer.Sound) }),
		"ticks":    r.value(func() int { return r.Emulator.Cpu.Ticks }),
		"awaiting": r.flag(func() bool { return r.Emulator.Cpu.Awaiting }),
		"tone":     r.flag(r.Emulator.Tone),
		"mem":      r.mem,
		"pixel":    r.pixel,
		"screen":   r.screen,
		"disasm":   r.disasm,
		"check":    r.check,
	}

	dict := starlark.StringDict{}
	for name, fn := range funcs {
		dict[name] = starlark.NewBuiltin(name, fn)
	}

	return dict
}

func (r *Runner) value(get func() int) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		return starlark.MakeInt(get()), nil
	}
}

func (r *Runner) flag(get func() bool) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		return starlark.Bool(get()), nil
	}
}

func (r *Runner) step(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}

	for range n {
		if err := r.Emulator.StepInstruction(); err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

func (r *Runner) tick(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}

	for range n {
		r.Emulator.TickTimers()
	}

	return starlark.None, nil
}

func (r *Runner) frame(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}

	per_frame := max(r.Emulator.Config.Hz/emulator.TIMER_HZ, 1)
	for range n {
		for range per_frame {
			if err := r.Emulator.StepInstruction(); err != nil {
				return nil, err
			}
		}
		r.Emulator.TickTimers()
		r.Emulator.Present()
	}

	return starlark.None, nil
}

func (r *Runner) setKey(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, pressed bool) (starlark.Value, error) {
	var key int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "key", &key); err != nil {
		return nil, err
	}

	if err := r.Emulator.Cpu.Keypad.SetKey(key, pressed); err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (r *Runner) press(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return r.setKey(b, args, kwargs, true)
}

func (r *Runner) release(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return r.setKey(b, args, kwargs, false)
}

func (r *Runner) restart(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	if err := r.Emulator.Restart(); err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (r *Runner) reg(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x); err != nil {
		return nil, err
	}

	if x < 0 || x >= len(r.Emulator.Cpu.V) {
		return nil, ErrRegister(x)
	}

	return starlark.MakeInt(int(r.Emulator.Cpu.V[x])), nil
}

func (r *Runner) mem(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	n := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr, "n?", &n); err != nil {
		return nil, err
	}

	if addr < 0 || n < 0 || addr+n > len(r.Emulator.Cpu.Memory.Data) {
		return nil, &ErrMemory{Addr: addr, Size: n}
	}

	view := r.Emulator.Cpu.Memory.View(uint16(addr), uint16(addr+n))
	return starlark.Bytes(view), nil
}

func (r *Runner) pixel(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y); err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(r.Emulator.Cpu.Display.Pixel(x, y))), nil
}

func (r *Runner) screen(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	frame := r.Emulator.Cpu.Display.Snapshot()
	return starlark.String(frame.String()), nil
}

func (r *Runner) disasm(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr); err != nil {
		return nil, err
	}

	word := r.Emulator.Cpu.Memory.Word(uint16(addr))
	line := debug.Disassemble(uint16(addr), word)
	return starlark.String(line.String()), nil
}

func (r *Runner) check(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var cond starlark.Value
	msg := ""
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "cond", &cond, "msg?", &msg); err != nil {
		return nil, err
	}

	if !cond.Truth() {
		return nil, &ErrCheckFailed{Message: msg}
	}

	return starlark.None, nil
}
