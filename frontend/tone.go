package frontend

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ezrec/chip8/emulator"
)

// SquareWave generates a mono float32 square wave while the tone is
// active, and silence otherwise.
type SquareWave struct {
	SampleRate int

	on    atomic.Bool
	phase uint32
	step  uint32
	amp   float32
	buf   []float32
}

var _ emulator.AudioSink = (*SquareWave)(nil)

// NewSquareWave creates a square wave generator.
func NewSquareWave(tone emulator.ToneConfig) *SquareWave {
	return &SquareWave{
		SampleRate: tone.SampleRate,
		step:       uint32(tone.Frequency * (1 << 32) / float64(tone.SampleRate)),
		amp:        float32(tone.Volume),
	}
}

// SetTone starts or stops the tone. Safe to call from any goroutine.
func (sw *SquareWave) SetTone(active bool) {
	sw.on.Store(active)
}

// Active reports if the tone is on.
func (sw *SquareWave) Active() bool {
	return sw.on.Load()
}

// Fill the sample buffer.
func (sw *SquareWave) Fill(samples []float32) {
	on := sw.on.Load()
	for n := range samples {
		switch {
		case !on:
			samples[n] = 0
		case sw.phase < 1<<31:
			samples[n] = sw.amp
		default:
			samples[n] = -sw.amp
		}
		sw.phase += sw.step
	}
}

// Read fills p with little-endian float32 samples.
func (sw *SquareWave) Read(p []byte) (n int, err error) {
	count := len(p) / 4
	if cap(sw.buf) < count {
		sw.buf = make([]float32, count)
	}
	samples := sw.buf[:count]

	sw.Fill(samples)
	for i, sample := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}

	n = count * 4
	return
}
