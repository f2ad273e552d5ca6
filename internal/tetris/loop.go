package tetris

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Input blocks until the next key press or timer expiry. Timer expiries
// are reported as Tick.
type Input interface {
	ReadKey(ctx context.Context) (rune, error)
}

// Timer schedules the next gravity tick.
type Timer interface {
	Arm(interval time.Duration)
	Disarm()
}

// Announcer presents a game's outcome to the player: the final score and
// the high-score table. It is called once on entering GameOver, Win or Quit.
type Announcer interface {
	Announce(ctx context.Context, outcome State, score Score) error
}

// Loop drives a Session from an Input, keeping a Timer and a Display in
// step with the session's state.
type Loop struct {
	session   *Session
	input     Input
	timer     Timer
	display   *Display
	announcer Announcer
	gravity   Gravity
	log       zerolog.Logger

	armed bool
	games int
}

type LoopOption func(*Loop)

func WithAnnouncer(a Announcer) LoopOption {
	return func(l *Loop) {
		l.announcer = a
	}
}

func WithLoopLogger(log zerolog.Logger) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}

func NewLoop(s *Session, in Input, t Timer, r Renderer, opts ...LoopOption) *Loop {
	l := &Loop{
		session: s,
		input:   in,
		timer:   t,
		display: NewDisplay(r),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	s.SetClearHook(func(State, int) {
		l.display.Update(s.board, s.peek, s.score)
	})
	return l
}

func (l *Loop) Session() *Session { return l.session }
func (l *Loop) Display() *Display { return l.display }

// Interval returns the gravity interval last handed to the timer.
func (l *Loop) Interval() time.Duration { return l.gravity.Current() }

// Start arms the timer for the session's current game and draws it.
func (l *Loop) Start() {
	l.games = l.session.Games()
	l.display.Invalidate()
	l.arm(l.gravity.Reset(l.session.Score().Level))
	l.Render()
}

// Render refreshes the display from the session.
func (l *Loop) Render() int {
	return l.session.Render(l.display)
}

// Run reads input until the session quits or wins, or ctx is done.
// Cancelling ctx is a normal way to stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.Start()
	defer l.disarm()
	for {
		if ctx.Err() != nil {
			return nil
		}
		key, err := l.input.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		done, err := l.Step(ctx, key)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step handles one key and reports whether the game loop should end.
func (l *Loop) Step(ctx context.Context, key rune) (bool, error) {
	prev := l.session.State()
	state := l.session.Handle(key)

	if l.session.Games() != l.games {
		l.games = l.session.Games()
		l.log.Debug().Int("game", l.games).Msg("restart")
		l.display.Invalidate()
		l.arm(l.gravity.Reset(l.session.Score().Level))
		l.Render()
		return false, nil
	}

	switch {
	case state == Paused && prev != Paused:
		l.disarm()
		l.display.Invalidate()
		l.Render()
		return false, nil
	case prev == Paused && state != Paused:
		l.arm(l.gravity.Current())
	case state == GameOver && prev != GameOver:
		l.disarm()
		l.Render()
		return false, l.announce(ctx, state)
	case state.Terminal():
		l.disarm()
		l.Render()
		if prev == GameOver {
			return true, nil
		}
		return true, l.announce(ctx, state)
	case key == Tick && state == Falling:
		l.arm(l.gravity.Next(l.session.Score().Level))
	}

	if state == Falling {
		l.Render()
	}
	return false, nil
}

func (l *Loop) announce(ctx context.Context, state State) error {
	score := l.session.Score()
	l.log.Info().
		Stringer("outcome", state).
		Int64("points", score.Points).
		Int("level", score.Level).
		Int64("total", score.Total()).
		Msg("game finished")
	if l.announcer == nil {
		return nil
	}
	return l.announcer.Announce(ctx, state, score)
}

func (l *Loop) arm(interval time.Duration) {
	l.armed = true
	l.timer.Arm(interval)
}

func (l *Loop) disarm() {
	if !l.armed {
		return
	}
	l.armed = false
	l.timer.Disarm()
}
