package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/KaiqueGovani/microtetris/internal/scores"
	"github.com/KaiqueGovani/microtetris/internal/term"
	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

// How long the final screen stays up after quitting or winning.
const lingerDuration = 5 * time.Second

// openStore builds the high-score store selected by s in dir, mirrored to
// the score server when sync is on.
func openStore(s settings, dir string, log zerolog.Logger) (scores.Store, func(), error) {
	var (
		local   scores.Store
		closeFn = func() {}
	)
	switch s.store {
	case storeJSON:
		local = scores.NewJSONFile(dir)
	case storeSQLite:
		db, err := scores.OpenSQLite(filepath.Join(dir, scores.SQLiteFileName), log)
		if err != nil {
			return nil, nil, err
		}
		local, closeFn = db, func() { _ = db.Close() }
	default:
		local = scores.NewFlatFile(dir)
	}
	if s.sync && s.scoreURL != "" {
		log.Debug().Str("url", s.scoreURL).Msg("score sync enabled")
		return scores.NewSynced(local, scores.NewRemote(s.scoreURL, s.scoreKey), log), closeFn, nil
	}
	return local, closeFn, nil
}

// scoreboard records finished games under the player's name.
type scoreboard struct {
	store scores.Store
	name  string
	now   func() time.Time
	log   zerolog.Logger
}

func newScoreboard(store scores.Store, name string, log zerolog.Logger) *scoreboard {
	return &scoreboard{store: store, name: name, now: time.Now, log: log}
}

// finish records score and returns the result screen: the outcome, the
// final score and the high-score table. Store failures are reported on
// the screen, not returned.
func (b *scoreboard) finish(ctx context.Context, outcome tetris.State, score tetris.Score) []string {
	lines := resultLines(outcome, score)
	if err := b.store.Record(ctx, scores.NewEntry(b.name, score, b.now())); err != nil {
		b.log.Error().Err(err).Msg("record score")
		return append(lines, "", "Score not saved: "+err.Error())
	}
	top, err := b.store.Top(ctx, scores.MaxEntries)
	if err != nil {
		b.log.Error().Err(err).Msg("list scores")
		return append(lines, "", "High scores unavailable: "+err.Error())
	}
	lines = append(lines, "", scores.TableHeader)
	for _, e := range top {
		lines = append(lines, scores.FormatLine(e))
	}
	return lines
}

func resultLines(outcome tetris.State, score tetris.Score) []string {
	var lines []string
	switch outcome {
	case tetris.Win:
		lines = append(lines, "YOU HAVE WON", "")
	case tetris.GameOver:
		lines = append(lines, "YOU HAVE FAILED!", "")
	}
	return append(lines, fmt.Sprintf("Your score: %d points x level %d = %d", score.Points, score.Level, score.Total()))
}

func replayPrompt(keys tetris.Keymap) string {
	return fmt.Sprintf("Press '%s' for replay or '%s' for quit!",
		term.KeyName(keys.Key(tetris.ActionRestart)), term.KeyName(keys.Key(tetris.ActionQuit)))
}

// termAnnouncer shows results in the side pane of the tcell frontend.
type termAnnouncer struct {
	board  *scoreboard
	term   *term.Terminal
	keys   tetris.Keymap
	linger time.Duration
}

func (a *termAnnouncer) Announce(ctx context.Context, outcome tetris.State, score tetris.Score) error {
	lines := a.board.finish(ctx, outcome, score)
	if outcome == tetris.GameOver {
		a.term.ShowText(append(lines, "", replayPrompt(a.keys))...)
		return nil
	}
	a.term.ShowText(lines...)
	return sleep(ctx, a.linger)
}

// sleep waits for d or until ctx is done. Cancellation is not an error.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
	return nil
}
