// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/ezrec/chip8/cpu"
)

// Emulator state. CPU + peripherals + scheduler + collaborators.
type Emulator struct {
	Verbose  bool        // If set, enables instruction tracing.
	Logger   *log.Logger // Destination of the instruction trace.
	*cpu.Cpu             // Reference to the CPU simulation.

	Config    Config     // Session configuration.
	Scheduler *Scheduler // Instruction, timer and presentation rates.

	Renderer   Renderer       // Optional display collaborator.
	Audio      AudioSink      // Optional tone collaborator.
	Input      Input          // Optional keypad collaborator.
	Diagnostic DiagnosticSink // Optional non-fatal error collaborator.
	Observer   Observer       // Optional state inspection collaborator.

	seed   uint64
	rom    []byte
	loaded bool
	tone   bool
}

// NewEmulator creates a new emulator. The configuration is assumed to be
// valid.
func NewEmulator(config Config) (emu *Emulator) {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	emu = &Emulator{
		Verbose:   config.Verbose,
		Cpu:       cpu.NewCpu(seed),
		Config:    config,
		Scheduler: NewScheduler(SystemClock{}, config.Hz, config.Fps, config.MaxDebt),
		seed:      seed,
	}

	return
}

// Load a program image into a new machine, created with the session seed.
// On error the current machine is left untouched.
func (emu *Emulator) Load(rom []byte) (err error) {
	fresh := cpu.NewCpu(emu.seed)
	err = fresh.Load(rom)
	if err != nil {
		return
	}

	emu.Cpu = fresh
	emu.rom = slices.Clone(rom)
	emu.loaded = true
	emu.Scheduler.Reset()
	emu.setTone(false)
	emu.Present()

	return
}

// Restart discards the machine, and reloads the current program image.
func (emu *Emulator) Restart() (err error) {
	if !emu.loaded {
		err = ErrNoProgram
		return
	}

	if emu.Logger != nil {
		emu.Logger.Info("Restarting")
	}

	err = emu.Load(emu.rom)
	return
}

// Close the emulator, silencing the tone.
func (emu *Emulator) Close() (err error) {
	emu.setTone(false)

	return
}

// Tone reports if the tone is currently active.
func (emu *Emulator) Tone() bool {
	return emu.tone
}

func (emu *Emulator) setTone(active bool) {
	emu.tone = active
	if emu.Audio != nil {
		emu.Audio.SetTone(active)
	}
}

func (emu *Emulator) report(err error) {
	if emu.Diagnostic != nil {
		emu.Diagnostic.Report(err)
	}
}

// StepInstruction executes one instruction, ignoring the scheduler.
// Unknown opcodes are reported to the diagnostic sink and execution
// continues; any other error is fatal, and returned as an ErrRuntime.
func (emu *Emulator) StepInstruction() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	pc := emu.Cpu.Pc
	err = emu.Cpu.Tick()
	if err == nil {
		return
	}

	if errors.Is(err, cpu.ErrOpcodeUnknown) {
		emu.report(err)
		err = nil
		return
	}

	rt := &ErrRuntime{Pc: pc, Err: err}
	var op *cpu.ErrOpcode
	if errors.As(err, &op) {
		rt.Code = op.Code
	}
	err = rt

	return
}

// TickTimers performs one 60Hz timer tick, and updates the tone.
func (emu *Emulator) TickTimers() {
	emu.setTone(emu.Cpu.Timer.Tick())
}

// Present sends the display to the renderer if it has changed, and the
// machine state to the observer.
func (emu *Emulator) Present() {
	if emu.Cpu.Display.Dirty() {
		if emu.Renderer != nil {
			emu.Renderer.Render(emu.Cpu.Display.Snapshot())
		}
		emu.Cpu.Display.ClearDirty()
	}

	if emu.Observer != nil {
		emu.Observer.Observe(emu.Cpu.State(), emu.Cpu.Memory.Program())
	}
}

// Step polls the input, then pays off the scheduler budgets. The returned
// signal is the request made by the input collaborator, if any.
func (emu *Emulator) Step() (signal Signal, err error) {
	if emu.Input != nil {
		signal = emu.Input.Poll(&emu.Cpu.Keypad)
	}

	switch signal {
	case SignalQuit:
		return
	case SignalRestart:
		err = emu.Restart()
		return
	}

	err = emu.Scheduler.Advance()
	if err != nil {
		emu.report(err)
		err = nil
	}

	for emu.Scheduler.Timer.Take() {
		emu.TickTimers()
	}

	for emu.Scheduler.Instruction.Take() {
		err = emu.StepInstruction()
		if err != nil {
			return
		}
	}

	present := false
	for emu.Scheduler.Render.Take() {
		present = true
	}
	if present {
		emu.Present()
	}

	return
}

// Run the emulator until the context is cancelled, the input requests a
// quit, or a fatal error occurs.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	if !emu.loaded {
		err = ErrNoProgram
		return
	}

	emu.Scheduler.Reset()
	defer emu.Close()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		var signal Signal
		signal, err = emu.Step()
		if err != nil {
			return
		}
		if signal == SignalQuit {
			if emu.Logger != nil {
				emu.Logger.Info("Quit requested")
			}
			return
		}

		timer.Reset(emu.Scheduler.Wait())
	}
}
