package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

func TestSoundForEvent(t *testing.T) {
	cases := []struct {
		ev   tetris.Event
		want SoundEvent
	}{
		{tetris.Event{Kind: tetris.EventMove}, SoundMove},
		{tetris.Event{Kind: tetris.EventRotate}, SoundRotate},
		{tetris.Event{Kind: tetris.EventDrop, Rows: 12}, SoundDrop},
		{tetris.Event{Kind: tetris.EventLock}, SoundLock},
		{tetris.Event{Kind: tetris.EventClear, Rows: 1}, SoundLine1},
		{tetris.Event{Kind: tetris.EventClear, Rows: 2}, SoundLine2},
		{tetris.Event{Kind: tetris.EventClear, Rows: 3}, SoundLine3},
		{tetris.Event{Kind: tetris.EventClear, Rows: 4}, SoundLine4},
		{tetris.Event{Kind: tetris.EventPause}, SoundPause},
		{tetris.Event{Kind: tetris.EventGameOver}, SoundGameOver},
		{tetris.Event{Kind: tetris.EventWin}, SoundWin},
		{tetris.Event{Kind: tetris.EventSpawn}, SoundNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, soundForEvent(tc.ev), tc.ev.Kind.String())
	}
	assert.Nil(t, tonesForEvent(SoundNone))
}

func TestSynthesizeLength(t *testing.T) {
	seq := []tone{
		{step: 0, length: 10 * time.Millisecond, gain: 0.3},
		{step: 7, length: 20 * time.Millisecond, gain: 0.3},
	}
	buf := synthesize(seq, 1000, 1)
	// 10 + gap 8 + 20 frames
	assert.Len(t, buf, 38*bytesPerFrame)

	for _, b := range synthesize(seq, 1000, 0) {
		if b != 0 {
			t.Fatal("zero volume must render silence")
		}
	}
	assert.Empty(t, synthesize(nil, 1000, 1))
}

func TestClearArpeggioGrowsWithRows(t *testing.T) {
	for i, ev := range []SoundEvent{SoundLine1, SoundLine2, SoundLine3, SoundLine4} {
		assert.Len(t, tonesForEvent(ev), i+2)
	}
	assert.InDelta(t, 440.0, tone{step: 12}.frequency(), 1e-9)
}

func TestMutedEngineIsSilent(t *testing.T) {
	s := newSound(false, zerolog.Nop())
	assert.False(t, s.Enabled())
	s.OnEvent(tetris.Event{Kind: tetris.EventLock})
}
