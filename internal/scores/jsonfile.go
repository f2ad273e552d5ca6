package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const JSONFileName = "scores.json"

// JSONFile keeps the table as an indented JSON array.
type JSONFile struct {
	mu   sync.Mutex
	path string
}

func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{path: filepath.Join(dir, JSONFileName)}
}

func (j *JSONFile) Path() string { return j.path }

func (j *JSONFile) Record(_ context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries, err := j.load()
	if err != nil {
		return err
	}
	return j.save(Insert(entries, e))
}

func (j *JSONFile) Top(_ context.Context, n int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries, err := j.load()
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return truncate(entries, n), nil
}

func (j *JSONFile) load() ([]Entry, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", j.path, err)
	}
	return entries, nil
}

func (j *JSONFile) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0o644)
}
