package frontend

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/emulator"
)

func TestSquareWave(t *testing.T) {
	assert := assert.New(t)

	sw := NewSquareWave(emulator.ToneConfig{Frequency: 1000, Volume: 0.5, SampleRate: 8000})

	samples := make([]float32, 16)
	sw.Fill(samples)
	for _, sample := range samples {
		assert.Equal(float32(0), sample)
	}

	sw.SetTone(true)
	assert.True(sw.Active())

	sw.phase = 0
	sw.Fill(samples)
	assert.Equal([]float32{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5}, samples[:8])
	assert.Equal(samples[:8], samples[8:])

	sw.SetTone(false)
	assert.False(sw.Active())
}

func TestSquareWave_Read(t *testing.T) {
	assert := assert.New(t)

	sw := NewSquareWave(emulator.ToneConfig{Frequency: 440, Volume: 0.25, SampleRate: 48000})
	sw.SetTone(true)

	p := make([]byte, 4*10+3)
	n, err := sw.Read(p)
	assert.NoError(err)
	assert.Equal(40, n)

	first := math.Float32frombits(binary.LittleEndian.Uint32(p))
	assert.Equal(float32(0.25), first)
}
