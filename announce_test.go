package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiqueGovani/microtetris/internal/scores"
	"github.com/KaiqueGovani/microtetris/internal/term"
	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

type failingStore struct{ err error }

func (f failingStore) Record(context.Context, scores.Entry) error       { return f.err }
func (f failingStore) Top(context.Context, int) ([]scores.Entry, error) { return nil, f.err }

func fixedBoard(store scores.Store) *scoreboard {
	b := newScoreboard(store, "ada", zerolog.Nop())
	b.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return b
}

func TestResultLines(t *testing.T) {
	score := tetris.Score{Points: 340, Level: 3}
	assert.Equal(t, []string{"Your score: 340 points x level 3 = 1020"}, resultLines(tetris.Quit, score))
	assert.Equal(t, "YOU HAVE FAILED!", resultLines(tetris.GameOver, score)[0])
	assert.Equal(t, "YOU HAVE WON", resultLines(tetris.Win, score)[0])
}

func TestScoreboardFinish(t *testing.T) {
	store := scores.NewFlatFile(t.TempDir())
	b := fixedBoard(store)
	ctx := context.Background()

	b.finish(ctx, tetris.Quit, tetris.Score{Points: 100, Level: 1})
	lines := b.finish(ctx, tetris.GameOver, tetris.Score{Points: 200, Level: 2})

	assert.Equal(t, []string{
		"YOU HAVE FAILED!",
		"",
		"Your score: 200 points x level 2 = 400",
		"",
		scores.TableHeader,
		"    400\t   200\t    2\tada",
		"    100\t   100\t    1\tada",
	}, lines)
}

func TestScoreboardStoreFailure(t *testing.T) {
	b := fixedBoard(failingStore{err: errors.New("read-only file system")})
	lines := b.finish(context.Background(), tetris.Quit, tetris.NewScore())
	assert.Equal(t, "Score not saved: read-only file system", lines[len(lines)-1])
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{storeFlat, storeJSON, storeSQLite} {
		store, closeFn, err := openStore(settings{store: kind}, dir, zerolog.Nop())
		require.NoError(t, err, kind)
		require.NoError(t, store.Record(context.Background(), scores.Entry{Name: "a", Score: 1, Points: 1, Level: 1}))
		closeFn()
	}
	assert.FileExists(t, filepath.Join(dir, scores.FlatFileName))
	assert.FileExists(t, filepath.Join(dir, scores.JSONFileName))
	assert.FileExists(t, filepath.Join(dir, scores.SQLiteFileName))

	store, closeFn, err := openStore(settings{store: storeFlat, sync: true, scoreURL: "http://127.0.0.1:1"}, dir, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &scores.Synced{}, store)
}

func TestReplayPrompt(t *testing.T) {
	assert.Equal(t, "Press 'r' for replay or 'q' for quit!", replayPrompt(tetris.DefaultKeymap()))
}

func TestTermAnnouncer(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	tm, err := term.New(sim, tetris.DefaultKeymap(), zerolog.Nop())
	require.NoError(t, err)
	defer tm.Close()
	sim.SetSize(100, 30)

	a := &termAnnouncer{board: fixedBoard(scores.NewFlatFile(t.TempDir())), term: tm, keys: tetris.DefaultKeymap(), linger: time.Millisecond}
	require.NoError(t, a.Announce(context.Background(), tetris.GameOver, tetris.Score{Points: 40, Level: 1}))

	x := tetris.Cols*2 + 2
	var first []rune
	for i := 0; i < len("YOU HAVE FAILED!"); i++ {
		r, _, _, _ := sim.GetContent(x+i, 0)
		first = append(first, r)
	}
	assert.Equal(t, "YOU HAVE FAILED!", string(first))

	start := time.Now()
	require.NoError(t, a.Announce(context.Background(), tetris.Quit, tetris.Score{Points: 40, Level: 1}))
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.NoError(t, sleep(ctx, time.Hour))
	assert.Less(t, time.Since(start), time.Second)
}
