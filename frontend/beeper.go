//go:build !headless

package frontend

import (
	"github.com/ebitengine/oto/v3"

	"github.com/ezrec/chip8/emulator"
)

// Beeper plays the square wave on the host audio device.
type Beeper struct {
	*SquareWave

	ctx    *oto.Context
	player *oto.Player
}

// NewBeeper opens the audio device and starts playback. The tone is
// initially off.
func NewBeeper(tone emulator.ToneConfig) (bp *Beeper, err error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready

	bp = &Beeper{
		SquareWave: NewSquareWave(tone),
		ctx:        ctx,
	}

	bp.player = ctx.NewPlayer(bp.SquareWave)
	bp.player.Play()

	return
}

// Close stops playback.
func (bp *Beeper) Close() (err error) {
	bp.SetTone(false)
	if bp.player != nil {
		err = bp.player.Close()
		bp.player = nil
	}

	return
}
