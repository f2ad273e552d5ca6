package scores

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FlatFileName is the table kept in the state directory.
const FlatFileName = "tetris.scores"

// FlatFile is a plain-text table, one tab-separated line per game, kept
// sorted by score and cut to MaxEntries lines after every record.
type FlatFile struct {
	mu   sync.Mutex
	path string
}

func NewFlatFile(dir string) *FlatFile {
	return &FlatFile{path: filepath.Join(dir, FlatFileName)}
}

func (f *FlatFile) Path() string { return f.path }

func (f *FlatFile) Record(_ context.Context, e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLines()
	if err != nil {
		return err
	}
	lines = append(lines, FormatLine(e))
	sort.SliceStable(lines, func(i, j int) bool {
		return leadingNumber(lines[i]) > leadingNumber(lines[j])
	})
	lines = lines[:min(len(lines), MaxEntries)]

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	return nil
}

// Top parses the table. Lines that are not in the table format are skipped.
func (f *FlatFile) Top(_ context.Context, n int) ([]Entry, error) {
	f.mu.Lock()
	lines, err := f.readLines()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, l := range lines {
		e, ok := parseLine(l)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return truncate(entries, n), nil
}

func (f *FlatFile) readLines() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// leadingNumber orders lines the way sort -n does: by the number at the
// start of the line, zero when there is none.
func leadingNumber(line string) int64 {
	s := strings.TrimLeft(line, " \t")
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && s[end] == '-') {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseLine(line string) (Entry, bool) {
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) != 4 {
		return Entry{}, false
	}
	score, err1 := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	points, err2 := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	level, err3 := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err := errors.Join(err1, err2, err3); err != nil {
		return Entry{}, false
	}
	return Entry{Name: fields[3], Score: score, Points: points, Level: level}, true
}
