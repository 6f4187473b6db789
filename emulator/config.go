package emulator

import (
	"github.com/BurntSushi/toml"
)

const (
	TIMER_HZ = 60 // Delay and sound timer rate.

	DEFAULT_HZ       = 700
	DEFAULT_FPS      = 60
	DEFAULT_MAX_DEBT = 16
	DEFAULT_SCALE    = 10

	DEFAULT_TONE_FREQUENCY   = 440.0
	DEFAULT_TONE_VOLUME      = 0.25
	DEFAULT_TONE_SAMPLE_RATE = 48000
)

// ToneConfig selects the beeper waveform.
type ToneConfig struct {
	Frequency  float64 `toml:"frequency"`   // Square wave frequency, in Hz.
	Volume     float64 `toml:"volume"`      // Amplitude, 0.0 to 1.0.
	SampleRate int     `toml:"sample_rate"` // Output sample rate, in Hz.
}

// Config of an emulator session.
type Config struct {
	Hz      int    `toml:"hz"`       // Instructions per second.
	Fps     int    `toml:"fps"`      // Presentation rate.
	MaxDebt int    `toml:"max_debt"` // Instruction quanta that may be carried before an overrun.
	Seed    uint64 `toml:"seed"`     // Random number seed; 0 selects one from the clock.
	Verbose bool   `toml:"verbose"`  // Trace every instruction.
	Scale   int    `toml:"scale"`    // Window pixels per display pixel.
	Overlay bool   `toml:"overlay"`  // Show the debug overlay.

	Tone ToneConfig `toml:"tone"`
}

// DefaultConfig returns the built in configuration.
func DefaultConfig() Config {
	return Config{
		Hz:      DEFAULT_HZ,
		Fps:     DEFAULT_FPS,
		MaxDebt: DEFAULT_MAX_DEBT,
		Scale:   DEFAULT_SCALE,
		Tone: ToneConfig{
			Frequency:  DEFAULT_TONE_FREQUENCY,
			Volume:     DEFAULT_TONE_VOLUME,
			SampleRate: DEFAULT_TONE_SAMPLE_RATE,
		},
	}
}

// LoadConfig reads a TOML file on top of the default configuration.
func LoadConfig(path string) (config Config, err error) {
	config = DefaultConfig()

	_, err = toml.DecodeFile(path, &config)
	if err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate rejects out of range settings.
func (config *Config) Validate() (err error) {
	checks := []struct {
		key   string
		value any
		ok    bool
	}{
		{"hz", config.Hz, config.Hz >= 1 && config.Hz <= 100000},
		{"fps", config.Fps, config.Fps >= 1 && config.Fps <= 1000},
		{"max_debt", config.MaxDebt, config.MaxDebt >= 1 && config.MaxDebt <= 10000},
		{"scale", config.Scale, config.Scale >= 1 && config.Scale <= 64},
		{"tone.sample_rate", config.Tone.SampleRate, config.Tone.SampleRate >= 8000 && config.Tone.SampleRate <= 192000},
		{"tone.frequency", config.Tone.Frequency, config.Tone.Frequency > 0 && config.Tone.Frequency < float64(config.Tone.SampleRate)/2},
		{"tone.volume", config.Tone.Volume, config.Tone.Volume >= 0 && config.Tone.Volume <= 1},
	}

	for _, check := range checks {
		if !check.ok {
			err = &ErrConfigValue{Key: check.key, Value: check.value}
			return
		}
	}

	return
}
