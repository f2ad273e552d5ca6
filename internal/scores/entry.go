// Package scores keeps the high-score table of finished games in a flat
// file, a JSON file, a SQLite database or a remote score server.
package scores

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

// MaxEntries is the length of a high-score table.
const MaxEntries = 10

// Entry is one finished game. Score is the ranking value, points times level.
type Entry struct {
	Name   string `json:"name"`
	Score  int64  `json:"score"`
	Points int64  `json:"points"`
	Level  int    `json:"level"`
	When   string `json:"when"`
}

func NewEntry(name string, s tetris.Score, when time.Time) Entry {
	return Entry{
		Name:   name,
		Score:  s.Total(),
		Points: s.Points,
		Level:  s.Level,
		When:   when.UTC().Format(time.RFC3339),
	}
}

// Store records finished games and lists the best of them.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Top(ctx context.Context, n int) ([]Entry, error)
}

// Insert adds entry to a table and returns it sorted and capped at
// MaxEntries.
func Insert(entries []Entry, entry Entry) []Entry {
	entries = append(entries, entry)
	sortEntries(entries)
	return truncate(entries, MaxEntries)
}

// Merge combines two tables, dropping entries present in both.
func Merge(local, remote []Entry) []Entry {
	merged := make([]Entry, 0, len(local)+len(remote))
	seen := make(map[string]struct{})
	for _, list := range [][]Entry{local, remote} {
		for _, e := range list {
			key := e.Name + "|" + e.When + "|" + strconv.FormatInt(e.Score, 10)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, e)
		}
	}
	sortEntries(merged)
	return truncate(merged, MaxEntries)
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].When > entries[j].When
		}
		return entries[i].Score > entries[j].Score
	})
}

func truncate(entries []Entry, n int) []Entry {
	if n >= 0 && len(entries) > n {
		return entries[:n]
	}
	return entries
}

// TableHeader heads the listing written by WriteTable.
const TableHeader = "  Score\tPoints\tLevel\tName"

// FormatLine renders e the way tetris.scores stores it.
func FormatLine(e Entry) string {
	return fmt.Sprintf("%7d\t %5d\t  %3d\t%s", e.Score, e.Points, e.Level, e.Name)
}

// WriteTable prints entries under TableHeader, one per line.
func WriteTable(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintln(w, TableHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, FormatLine(e)); err != nil {
			return err
		}
	}
	return nil
}
