package tetris

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// State is the position of a session in the game state machine.
type State int

const (
	Falling State = iota
	RowClearing
	LineShifting
	SpawnCheck
	GameOver
	Paused
	Win
	Quit
)

func (s State) String() string {
	switch s {
	case Falling:
		return "falling"
	case RowClearing:
		return "row-clearing"
	case LineShifting:
		return "line-shifting"
	case SpawnCheck:
		return "spawn-check"
	case GameOver:
		return "game-over"
	case Paused:
		return "paused"
	case Win:
		return "win"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further input is accepted.
func (s State) Terminal() bool {
	return s == Win || s == Quit
}

type EventKind int

const (
	EventMove EventKind = iota
	EventRotate
	EventDrop
	EventLock
	EventClear
	EventSpawn
	EventGameOver
	EventWin
	EventPause
	EventResume
	EventRestart
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventRotate:
		return "rotate"
	case EventDrop:
		return "drop"
	case EventLock:
		return "lock"
	case EventClear:
		return "clear"
	case EventSpawn:
		return "spawn"
	case EventGameOver:
		return "game-over"
	case EventWin:
		return "win"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventRestart:
		return "restart"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event reports something that happened to a session. Rows is the number
// of rows dropped for EventDrop and cleared for EventClear.
type Event struct {
	Kind  EventKind
	Rows  int
	Score Score
}

type Listener func(Event)

type Option func(*Session)

func WithSource(src Source) Option {
	return func(s *Session) {
		s.src = src
	}
}

func WithKeymap(k Keymap) Option {
	return func(s *Session) {
		s.keys = k
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

func WithListener(fn Listener) Option {
	return func(s *Session) {
		s.listeners = append(s.listeners, fn)
	}
}

// Session owns the board, the active and preview pieces and the score of
// one player. It is not safe for concurrent use.
type Session struct {
	board *Board
	shape *Shape
	peek  *Shape
	color Color
	pos   int
	score Score
	state State
	games int

	keys      Keymap
	src       Source
	log       zerolog.Logger
	listeners []Listener
	onClear   ClearPhase
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		board: NewBoard(),
		keys:  DefaultKeymap(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		seed := uint64(time.Now().UnixNano())
		s.src = rand.New(rand.NewPCG(seed, seed>>32))
	}
	s.Reset()
	return s
}

// Reset puts the session back to the start of a new game. The preview piece
// carries over and becomes the first falling piece.
func (s *Session) Reset() {
	s.board.Reset()
	s.score = NewScore()
	s.pos = SpawnPos
	s.shape = s.nextShape()
	s.color = s.shape.Color
	s.state = Falling
	s.games++
	s.log.Debug().Int("game", s.games).Int("shape", int(s.shape.ID)).Msg("new game")
}

// SetClearHook installs fn to be called after each row removal and each
// shift during a line clear.
func (s *Session) SetClearHook(fn ClearPhase) {
	s.onClear = fn
}

func (s *Session) Board() *Board     { return s.board }
func (s *Session) Current() *Shape   { return s.shape }
func (s *Session) Peek() *Shape      { return s.peek }
func (s *Session) Position() int     { return s.pos }
func (s *Session) Score() Score      { return s.score }
func (s *Session) State() State      { return s.state }
func (s *Session) Keymap() Keymap    { return s.keys }
func (s *Session) Games() int        { return s.games }
func (s *Session) PieceColor() Color { return s.color }

// Handle runs one iteration of the state machine for key, which is either
// Tick or a raw character, and returns the resulting state.
func (s *Session) Handle(key rune) State {
	switch s.state {
	case Win, Quit:
		return s.state
	case GameOver:
		switch s.keys.Action(key) {
		case ActionRestart:
			s.restart()
		case ActionQuit:
			s.quit()
		}
		return s.state
	case Paused:
		if key != Tick && s.keys.Action(key) == ActionPause {
			s.state = Falling
			s.emit(Event{Kind: EventResume})
		}
		return s.state
	}

	if key == Tick {
		s.fall()
		return s.state
	}

	switch s.keys.Action(key) {
	case ActionLeft:
		s.shift(-1)
	case ActionRight:
		s.shift(1)
	case ActionRotate:
		s.rotate(s.shape.Rotate())
	case ActionReverseRotate:
		s.rotate(s.shape.RotateBack())
	case ActionDrop:
		s.drop()
	case ActionRestart:
		s.restart()
	case ActionPause:
		s.state = Paused
		s.emit(Event{Kind: EventPause})
	case ActionQuit:
		s.quit()
	}
	return s.state
}

// Render shows the session on d. The falling piece is written into the board
// only for the duration of the update.
func (s *Session) Render(d *Display) int {
	if s.state == Falling || s.state == Paused {
		s.board.Place(s.shape, s.pos, s.color)
		defer s.board.Place(s.shape, s.pos, Empty)
	}
	return d.Update(s.board, s.peek, s.score)
}

func (s *Session) shift(dx int) {
	if !s.board.Fits(s.shape, s.pos+dx) {
		return
	}
	s.pos += dx
	s.emit(Event{Kind: EventMove})
}

func (s *Session) rotate(next *Shape) {
	if !s.board.Fits(next, s.pos) {
		return
	}
	s.shape = next
	s.emit(Event{Kind: EventRotate})
}

func (s *Session) drop() {
	rows := 0
	for s.board.Fits(s.shape, s.pos+Cols) {
		s.pos += Cols
		rows++
	}
	if rows == 0 {
		return
	}
	if !s.score.AddDrop(rows) {
		s.win()
		return
	}
	s.emit(Event{Kind: EventDrop, Rows: rows})
}

func (s *Session) fall() {
	if s.board.Fits(s.shape, s.pos+Cols) {
		s.pos += Cols
		return
	}

	s.board.Place(s.shape, s.pos, s.color)
	s.emit(Event{Kind: EventLock})

	s.state = RowClearing
	cleared := s.board.ClearLines(func(state State, row int) {
		s.state = state
		if s.onClear != nil {
			s.onClear(state, row)
		}
	})
	if cleared > 0 {
		if !s.score.Award(cleared) {
			s.win()
			return
		}
		s.emit(Event{Kind: EventClear, Rows: cleared})
	}

	s.state = SpawnCheck
	s.shape = s.nextShape()
	s.color = s.shape.Color
	s.pos = SpawnPos
	if !s.board.Fits(s.shape, s.pos) {
		s.state = GameOver
		s.emit(Event{Kind: EventGameOver})
		return
	}
	s.state = Falling
	s.emit(Event{Kind: EventSpawn})
}

func (s *Session) restart() {
	s.Reset()
	s.emit(Event{Kind: EventRestart})
}

func (s *Session) quit() {
	s.state = Quit
	s.emit(Event{Kind: EventQuit})
}

func (s *Session) win() {
	s.state = Win
	s.emit(Event{Kind: EventWin})
}

func (s *Session) nextShape() *Shape {
	if s.peek == nil {
		s.peek = RandomShape(s.src)
	}
	next := s.peek
	s.peek = RandomShape(s.src)
	return next
}

func (s *Session) emit(ev Event) {
	ev.Score = s.score
	s.log.Debug().
		Stringer("event", ev.Kind).
		Int("rows", ev.Rows).
		Int64("points", ev.Score.Points).
		Int("level", ev.Score.Level).
		Stringer("state", s.state).
		Msg("session event")
	for _, fn := range s.listeners {
		fn(ev)
	}
}
