package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/blockfall/game"
	"go.uber.org/zap"
)

const sampleRate = 44100

// Ambient arpeggio, in Hz.
var ambientNotes = []float64{220.00, 261.63, 329.63, 392.00, 329.63, 261.63}

// sound plays an ambient loop while a match is running and a short blip on
// every lock.
type sound struct {
	logger  *zap.Logger
	ambient *audio.Player
	blip    *audio.Player
	clear   *audio.Player
}

func newSound(logger *zap.Logger) *sound {
	ctx := audio.NewContext(sampleRate)

	loopPCM := arpeggio(ambientNotes, 300*time.Millisecond, 0.08)
	ambient, err := ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(loopPCM), int64(len(loopPCM))))
	if err != nil {
		logger.Warn("ambient loop disabled", zap.Error(err))
	}

	return &sound{
		logger:  logger,
		ambient: ambient,
		blip:    ctx.NewPlayerFromBytes(tone(660, 60*time.Millisecond, 0.25)),
		clear:   ctx.NewPlayerFromBytes(arpeggio([]float64{523.25, 659.25, 783.99}, 70*time.Millisecond, 0.3)),
	}
}

func (s *sound) onEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventStarted, game.EventResumed:
		if s.ambient != nil {
			s.ambient.Play()
		}
	case game.EventPaused, game.EventGameOver:
		if s.ambient != nil {
			s.ambient.Pause()
		}
	case game.EventLocked:
		p := s.blip
		if ev.Lines > 0 {
			p = s.clear
		}
		s.restart(p)
	}
}

func (s *sound) restart(p *audio.Player) {
	if err := p.Rewind(); err != nil {
		s.logger.Debug("rewind", zap.Error(err))
		return
	}
	p.Play()
}

// tone renders a sine note as 16-bit little-endian stereo PCM with a linear
// fade out.
func tone(freq float64, d time.Duration, volume float64) []byte {
	n := int(d.Seconds() * sampleRate)
	buf := make([]byte, n*4)
	for i := range n {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * volume * fade
		sample := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], sample)
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample)
	}
	return buf
}

// arpeggio concatenates one tone per note.
func arpeggio(notes []float64, each time.Duration, volume float64) []byte {
	var out []byte
	for _, f := range notes {
		out = append(out, tone(f, each, volume)...)
	}
	return out
}
