package main

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

type SoundEvent int

const (
	SoundNone SoundEvent = iota
	SoundLock
	SoundLine1
	SoundLine2
	SoundLine3
	SoundLine4
	SoundRotate
	SoundMove
	SoundDrop
	SoundPause
	SoundGameOver
	SoundWin
)

type SoundEngine struct {
	mu      sync.RWMutex
	enabled bool
	ctx     *oto.Context
	volume  float64
}

// newSound opens the audio device when enabled. Without a device the
// engine stays silent.
func newSound(enabled bool, log zerolog.Logger) *SoundEngine {
	if !enabled {
		return NewSoundEngine(nil, false)
	}
	ctx, err := initAudioContext()
	if err != nil {
		log.Warn().Err(err).Msg("audio disabled")
	}
	return NewSoundEngine(ctx, enabled)
}

func NewSoundEngine(ctx *oto.Context, enabled bool) *SoundEngine {
	return &SoundEngine{ctx: ctx, enabled: enabled && ctx != nil, volume: 0.7}
}

func (s *SoundEngine) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// OnEvent is a tetris.Listener.
func (s *SoundEngine) OnEvent(ev tetris.Event) {
	s.Play(soundForEvent(ev))
}

func (s *SoundEngine) Play(event SoundEvent) {
	s.mu.RLock()
	ctx, enabled, volume := s.ctx, s.enabled, s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	pcm := synthesize(sequence, sampleRate, volume)
	go func() {
		player := ctx.NewPlayer(bytes.NewReader(pcm))
		defer player.Close()
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
	}()
}

func soundForEvent(ev tetris.Event) SoundEvent {
	switch ev.Kind {
	case tetris.EventMove:
		return SoundMove
	case tetris.EventRotate:
		return SoundRotate
	case tetris.EventDrop:
		return SoundDrop
	case tetris.EventLock:
		return SoundLock
	case tetris.EventClear:
		switch {
		case ev.Rows >= 4:
			return SoundLine4
		case ev.Rows == 3:
			return SoundLine3
		case ev.Rows == 2:
			return SoundLine2
		default:
			return SoundLine1
		}
	case tetris.EventPause, tetris.EventResume:
		return SoundPause
	case tetris.EventGameOver:
		return SoundGameOver
	case tetris.EventWin:
		return SoundWin
	default:
		return SoundNone
	}
}

// tone is one synthesized note, step semitones above A3.
type tone struct {
	step   int
	length time.Duration
	gain   float64
}

func (t tone) frequency() float64 {
	return 220 * math.Pow(2, float64(t.step)/12)
}

// clearLadder is the arpeggio for line clears. Clearing n rows plays the
// first n+1 notes.
var clearLadder = [...]int{12, 16, 19, 24, 28}

func tonesForEvent(event SoundEvent) []tone {
	switch event {
	case SoundLock:
		return []tone{{step: 0, length: 60 * time.Millisecond, gain: 0.3}}
	case SoundLine1, SoundLine2, SoundLine3, SoundLine4:
		n := int(event-SoundLine1) + 2
		seq := make([]tone, 0, n)
		for i, step := range clearLadder[:n] {
			length := 60 * time.Millisecond
			if i == n-1 {
				length = 110 * time.Millisecond
			}
			seq = append(seq, tone{step: step, length: length, gain: 0.3})
		}
		return seq
	case SoundWin:
		seq := make([]tone, 0, 2*len(clearLadder))
		for _, octave := range []int{0, 12} {
			for _, step := range clearLadder {
				seq = append(seq, tone{step: step + octave, length: 70 * time.Millisecond, gain: 0.28})
			}
		}
		return seq
	case SoundRotate:
		return []tone{{step: 7, length: 35 * time.Millisecond, gain: 0.22}}
	case SoundMove:
		return []tone{{step: 3, length: 20 * time.Millisecond, gain: 0.15}}
	case SoundDrop:
		return []tone{
			{step: 5, length: 25 * time.Millisecond, gain: 0.22},
			{step: -7, length: 45 * time.Millisecond, gain: 0.25},
		}
	case SoundPause:
		return []tone{{step: 12, length: 30 * time.Millisecond, gain: 0.15}}
	case SoundGameOver:
		return []tone{
			{step: 7, length: 120 * time.Millisecond, gain: 0.28},
			{step: 3, length: 120 * time.Millisecond, gain: 0.28},
			{step: -5, length: 260 * time.Millisecond, gain: 0.28},
		}
	default:
		return nil
	}
}

const (
	bytesPerFrame = 4 // 16-bit stereo
	noteGap       = 8 * time.Millisecond
)

func samplesFor(d time.Duration, rate int) int {
	return int(float64(rate) * d.Seconds())
}

// synthesize renders seq as signed 16-bit little-endian stereo frames with
// a short silence between notes.
func synthesize(seq []tone, rate int, master float64) []byte {
	gap := samplesFor(noteGap, rate)
	frames := 0
	for _, t := range seq {
		frames += samplesFor(t.length, rate) + gap
	}
	if frames > 0 {
		frames -= gap
	}
	out := make([]byte, frames*bytesPerFrame)
	at := 0
	for _, t := range seq {
		n := samplesFor(t.length, rate)
		writeNote(out[at*bytesPerFrame:], t.frequency(), n, rate, t.gain*clampVolume(master))
		at += n + gap
	}
	return out
}

// writeNote writes n frames of a sine at freq with a 3ms linear attack and
// release.
func writeNote(out []byte, freq float64, n, rate int, gain float64) {
	const peak = 1<<15 - 1
	ramp := rate * 3 / 1000
	for i := 0; i < n; i++ {
		env := 1.0
		switch {
		case ramp > 0 && i < ramp:
			env = float64(i) / float64(ramp)
		case ramp > 0 && n-i < ramp:
			env = float64(n-i) / float64(ramp)
		}
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(rate)) * gain * env * peak)
		frame := out[i*bytesPerFrame:]
		frame[0], frame[1] = byte(v), byte(v>>8)
		frame[2], frame[3] = byte(v), byte(v>>8)
	}
}

func clampVolume(value float64) float64 {
	return math.Min(1, math.Max(0, value))
}
