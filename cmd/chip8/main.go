// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/ezrec/chip8/debug"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
	"github.com/ezrec/chip8/script"
	"github.com/ezrec/chip8/translate"
)

type options struct {
	config   string
	hz       int
	fps      int
	scale    int
	seed     uint64
	term     bool
	headless bool
	script   string
	debug    bool
	quiet    bool
	overlay  bool
	lang     string
	verbose  bool
}

// createLogger creates a logger with the requested verbosity.
func createLogger(verbose, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	var opts options

	flag.StringVar(&opts.config, "config", "", "TOML configuration file")
	flag.IntVar(&opts.hz, "hz", emulator.DEFAULT_HZ, "Instructions per second")
	flag.IntVar(&opts.fps, "fps", emulator.DEFAULT_FPS, "Presentation rate")
	flag.IntVar(&opts.scale, "scale", emulator.DEFAULT_SCALE, "Window pixels per display pixel")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random number seed (0 for the clock)")
	flag.BoolVar(&opts.term, "term", false, "Present in the terminal")
	flag.BoolVar(&opts.headless, "headless", false, "Run with no presentation")
	flag.StringVar(&opts.script, "script", "", "Starlark script to run against the program")
	flag.BoolVar(&opts.debug, "debug", false, "Debug logging")
	flag.BoolVar(&opts.quiet, "quiet", false, "Only log errors")
	flag.BoolVar(&opts.overlay, "overlay", false, "Show the debug overlay")
	flag.StringVar(&opts.lang, "lang", "", "Message language (BCP 47 tag)")
	flag.BoolVar(&opts.verbose, "v", false, "Trace every instruction")

	flag.Parse()

	if len(opts.lang) != 0 {
		err := translate.SetLanguage(opts.lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v: -lang %v: %v\n", os.Args[0], opts.lang, err)
			os.Exit(1)
		}
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %v [flags] rom.ch8\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := createLogger(opts.debug || opts.verbose, opts.quiet)

	err := run(app.Context(), logger, &opts, flag.Arg(0))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(err.Error())
	}
}

// loadConfig reads the configuration file, then applies the flags given
// on the command line.
func loadConfig(opts *options) (config emulator.Config, err error) {
	config = emulator.DefaultConfig()
	if len(opts.config) != 0 {
		config, err = emulator.LoadConfig(opts.config)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.config, err)
			return
		}
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "hz":
			config.Hz = opts.hz
		case "fps":
			config.Fps = opts.fps
		case "scale":
			config.Scale = opts.scale
		case "seed":
			config.Seed = opts.seed
		case "overlay":
			config.Overlay = opts.overlay
		case "v":
			config.Verbose = opts.verbose
		}
	})

	err = config.Validate()
	return
}

func run(ctx context.Context, logger *log.Logger, opts *options, path string) (err error) {
	config, err := loadConfig(opts)
	if err != nil {
		return
	}

	rom, err := os.ReadFile(path)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator(config)
	emu.Logger = logger
	emu.Diagnostic = &emulator.LogSink{Logger: logger}

	err = emu.Load(rom)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	logger.Info("Loaded program",
		log.String("path", path),
		log.Int("size", len(rom)),
		log.Int("hz", config.Hz))

	switch {
	case len(opts.script) != 0:
		err = runScript(emu, opts.script)
	case opts.headless:
		err = emu.Run(ctx)
	case opts.term:
		err = runTerminal(ctx, emu)
	default:
		err = runWindow(ctx, emu, filepath.Base(path))
	}

	return
}

func runScript(emu *emulator.Emulator, path string) (err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	runner := script.NewRunner(emu)
	runner.Print = func(msg string) {
		fmt.Println(msg)
	}

	_, err = runner.Exec(path, src)
	return
}

func attachAudio(emu *emulator.Emulator) (closer func() error) {
	beeper, err := frontend.NewBeeper(emu.Config.Tone)
	if err != nil {
		emu.Logger.Warn("Audio disabled", log.Err(err))
		return func() error { return nil }
	}

	emu.Audio = beeper
	return beeper.Close
}

func runTerminal(ctx context.Context, emu *emulator.Emulator) (err error) {
	tm, err := frontend.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return
	}
	defer tm.Close()

	defer attachAudio(emu)()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go tm.Listen(ctx)

	emu.Renderer = tm
	emu.Input = tm

	err = emu.Run(ctx)
	return
}

func runWindow(ctx context.Context, emu *emulator.Emulator, title string) (err error) {
	var overlay *debug.Overlay
	if emu.Config.Overlay {
		overlay = debug.NewOverlay()
		emu.Observer = overlay
	}

	window, err := frontend.NewWindow("CHIP-8 - "+title, emu.Config.Scale, overlay)
	if err != nil {
		return
	}

	defer attachAudio(emu)()

	emu.Renderer = window
	emu.Input = window

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- emu.Run(ctx)
		window.Close()
	}()

	// The window must run on the main goroutine.
	err = window.Run()
	cancel()

	run_err := <-done
	if err == nil {
		err = run_err
	}

	return
}
