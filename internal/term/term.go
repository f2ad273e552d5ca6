// Package term runs a tetris.Loop on a tcell screen: it reads keys and
// gravity ticks, and draws the board two screen columns per cell.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

var ErrClosed = errors.New("terminal closed")

// ErrInterrupted is returned by ReadKey for Ctrl-C, which raw mode delivers
// as a key instead of SIGINT. It wraps context.Canceled so a Loop stops as
// it does for the signal.
var ErrInterrupted = fmt.Errorf("interrupted: %w", context.Canceled)

const (
	cellWidth = 2
	// x of the pane right of the board
	sideX       = tetris.Cols*cellWidth + 2
	levelY      = 1
	pointsY     = 2
	previewY    = 4
	keysY       = 10
	sideMinRows = keysY + int(tetris.ActionNone) + 2
)

var palette = [...]tcell.Color{
	tetris.Empty:  tcell.ColorReset,
	1:             tcell.ColorMaroon,
	2:             tcell.ColorGreen,
	3:             tcell.ColorOlive,
	4:             tcell.ColorNavy,
	5:             tcell.ColorPurple,
	6:             tcell.ColorTeal,
	7:             tcell.ColorSilver,
	tetris.Border: tcell.ColorGray,
}

func cellStyle(c tetris.Color) tcell.Style {
	if c <= tetris.Empty || int(c) >= len(palette) {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Background(palette[c])
}

// Terminal implements tetris.Input, tetris.Timer and the tetris renderer
// interfaces on one tcell.Screen. Apart from the event pump started by New,
// it must be used from a single goroutine.
type Terminal struct {
	screen tcell.Screen
	keys   tetris.Keymap
	log    zerolog.Logger

	events chan tcell.Event
	done   chan struct{}
	timer  *time.Timer
}

// Open initializes the controlling terminal.
func Open(keys tetris.Keymap, log zerolog.Logger) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return New(s, keys, log)
}

// New takes ownership of screen, initializes it and starts reading events.
func New(screen tcell.Screen, keys tetris.Keymap, log zerolog.Logger) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()
	t := &Terminal{
		screen: screen,
		keys:   keys,
		log:    log,
		events: make(chan tcell.Event, 32),
		done:   make(chan struct{}),
	}
	t.Clear()
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	select {
	case <-t.done:
		return
	default:
	}
	close(t.done)
	t.Disarm()
	t.screen.Fini()
}

func (t *Terminal) Screen() tcell.Screen { return t.screen }

// ReadKey blocks until a key is pressed, the gravity timer fires (Tick) or
// ctx is done.
func (t *Terminal) ReadKey(ctx context.Context) (rune, error) {
	for {
		var tick <-chan time.Time
		if t.timer != nil {
			tick = t.timer.C
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-tick:
			return tetris.Tick, nil
		case ev, ok := <-t.events:
			if !ok {
				return 0, ErrClosed
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyCtrlC {
					return 0, ErrInterrupted
				}
				if r, ok := t.translate(e); ok {
					return r, nil
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}
}

func (t *Terminal) translate(e *tcell.EventKey) (rune, bool) {
	switch e.Key() {
	case tcell.KeyRune:
		return e.Rune(), true
	case tcell.KeyLeft:
		return t.keys.Key(tetris.ActionLeft), true
	case tcell.KeyRight:
		return t.keys.Key(tetris.ActionRight), true
	case tcell.KeyUp:
		return t.keys.Key(tetris.ActionRotate), true
	case tcell.KeyDown:
		return t.keys.Key(tetris.ActionDrop), true
	}
	t.log.Debug().Str("key", e.Name()).Msg("ignored key")
	return 0, false
}

// Arm schedules one Tick after d, replacing any pending one.
func (t *Terminal) Arm(d time.Duration) {
	if t.timer == nil {
		t.timer = time.NewTimer(d)
		return
	}
	t.stop()
	t.timer.Reset(d)
}

func (t *Terminal) Disarm() {
	if t.timer != nil {
		t.stop()
	}
}

func (t *Terminal) stop() {
	if !t.timer.Stop() {
		select {
		case <-t.timer.C:
		default:
		}
	}
}
