package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

// gravityMsg is a tick of the timer generation gen. Ticks of older
// generations were disarmed or replaced and are dropped.
type gravityMsg struct{ gen int }

type resultMsg struct {
	outcome tetris.State
	lines   []string
}

type lingerDoneMsg struct{}

// teaTimer is the tetris.Timer of the bubbletea frontend. Arm only records
// the request; cmd turns it into a tea.Tick.
type teaTimer struct {
	gen      int
	interval time.Duration
	armed    bool
	pending  bool
}

func (t *teaTimer) Arm(d time.Duration) {
	t.gen++
	t.interval = d
	t.armed = true
	t.pending = true
}

func (t *teaTimer) Disarm() {
	t.gen++
	t.armed = false
	t.pending = false
}

func (t *teaTimer) cmd() tea.Cmd {
	if !t.pending {
		return nil
	}
	t.pending = false
	gen := t.gen
	return tea.Tick(t.interval, func(time.Time) tea.Msg { return gravityMsg{gen: gen} })
}

func (t *teaTimer) live(gen int) bool {
	return t.armed && gen == t.gen
}

type outcome struct {
	state tetris.State
	score tetris.Score
}

// teaAnnouncer defers recording to a tea.Cmd so that store and network
// access stay off the update loop.
type teaAnnouncer struct {
	pending *outcome
}

func (a *teaAnnouncer) Announce(_ context.Context, state tetris.State, score tetris.Score) error {
	a.pending = &outcome{state: state, score: score}
	return nil
}

func (a *teaAnnouncer) take() *outcome {
	o := a.pending
	a.pending = nil
	return o
}

type Model struct {
	session   *tetris.Session
	loop      *tetris.Loop
	canvas    *canvas
	timer     *teaTimer
	announcer *teaAnnouncer
	board     *scoreboard
	theme     Theme
	keys      tetris.Keymap
	log       zerolog.Logger
	linger    time.Duration

	width   int
	height  int
	result  []string
	warning string
	done    bool
}

func NewModel(s *tetris.Session, board *scoreboard, theme Theme, log zerolog.Logger) Model {
	c := &canvas{}
	timer := &teaTimer{}
	announcer := &teaAnnouncer{}
	return Model{
		session:   s,
		loop:      tetris.NewLoop(s, nil, timer, c, tetris.WithAnnouncer(announcer), tetris.WithLoopLogger(log)),
		canvas:    c,
		timer:     timer,
		announcer: announcer,
		board:     board,
		theme:     theme,
		keys:      s.Keymap(),
		log:       log,
		linger:    lingerDuration,
	}
}

func (m Model) Init() tea.Cmd {
	m.loop.Start()
	return m.timer.cmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		if msg.Type == tea.KeyCtrlC {
			// raw mode swallows SIGINT; leave like the signal would, in any state
			m.log.Debug().Stringer("state", m.session.State()).Msg("interrupted")
			m.timer.Disarm()
			m.done = true
			return m, tea.Quit
		}
		key, ok := m.translate(msg)
		if !ok {
			return m, nil
		}
		return m.step(key)
	case gravityMsg:
		if m.done || !m.timer.live(msg.gen) {
			return m, nil
		}
		return m.step(tetris.Tick)
	case resultMsg:
		m.result = msg.lines
		if msg.outcome == tetris.GameOver {
			m.result = append(m.result, "", replayPrompt(m.keys))
			return m, nil
		}
		return m, tea.Tick(m.linger, func(time.Time) tea.Msg { return lingerDoneMsg{} })
	case lingerDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) step(key rune) (tea.Model, tea.Cmd) {
	done, err := m.loop.Step(context.Background(), key)
	if err != nil {
		m.log.Error().Err(err).Msg("step")
		m.warning = err.Error()
	}
	if state := m.session.State(); state == tetris.Falling || state == tetris.Paused {
		m.result = nil
	}

	cmds := []tea.Cmd{m.timer.cmd()}
	if o := m.announcer.take(); o != nil {
		cmds = append(cmds, m.recordCmd(*o))
	} else if done {
		cmds = append(cmds, tea.Quit)
	}
	m.done = done
	return m, tea.Batch(cmds...)
}

func (m Model) recordCmd(o outcome) tea.Cmd {
	board := m.board
	return func() tea.Msg {
		return resultMsg{outcome: o.state, lines: board.finish(context.Background(), o.state, o.score)}
	}
}

func (m Model) translate(msg tea.KeyMsg) (rune, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return msg.Runes[0], true
		}
	case tea.KeySpace:
		return ' ', true
	case tea.KeyLeft:
		return m.keys.Key(tetris.ActionLeft), true
	case tea.KeyRight:
		return m.keys.Key(tetris.ActionRight), true
	case tea.KeyUp:
		return m.keys.Key(tetris.ActionRotate), true
	case tea.KeyDown:
		return m.keys.Key(tetris.ActionDrop), true
	}
	return 0, false
}

func (m Model) View() string {
	return viewGame(m)
}
