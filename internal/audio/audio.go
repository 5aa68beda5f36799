// Package audio produces the bleep for the emulator's sound timer through
// the beep speaker.
package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const sampleRate beep.SampleRate = 44100
const toneHz = 440

// Bleeper plays a square wave while the emulator's sound register counts
// down. The tone is synthesized, so no audio asset ships with the binary.
type Bleeper struct {
	ctrl *beep.Ctrl
}

// NewBleeper initializes the speaker and starts the (paused) tone.
func NewBleeper() (*Bleeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	ctrl := &beep.Ctrl{Streamer: &squareWave{}, Paused: true}
	speaker.Play(ctrl)
	return &Bleeper{ctrl: ctrl}, nil
}

// Update resumes or pauses the tone to match the sound flag. Call it once per
// host frame.
func (b *Bleeper) Update(soundOn bool) {
	speaker.Lock()
	b.ctrl.Paused = !soundOn
	speaker.Unlock()
}

// squareWave streams an endless square wave at toneHz.
type squareWave struct {
	pos int
}

func (s *squareWave) Stream(samples [][2]float64) (int, bool) {
	period := int(sampleRate) / toneHz
	for i := range samples {
		v := 0.25
		if s.pos%period < period/2 {
			v = -0.25
		}
		samples[i][0], samples[i][1] = v, v
		s.pos++
	}
	return len(samples), true
}

func (s *squareWave) Err() error { return nil }
