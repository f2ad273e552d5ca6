package scores

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoStateDir = errors.New("neither XDG_STATE_HOME nor HOME is set")

// StateDir returns the directory games keep their state in, creating it
// if needed: $XDG_STATE_HOME/games, or $HOME/.local/state/games.
func StateDir() (string, error) {
	var dir string
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "games")
	} else if home := os.Getenv("HOME"); home != "" {
		dir = filepath.Join(home, ".local", "state", "games")
	} else {
		return "", ErrNoStateDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return dir, nil
}

// PlayerName picks the name recorded with a score: the configured one,
// then $LOGNAME, then "anonymous".
func PlayerName(configured string) string {
	if name := strings.TrimSpace(configured); name != "" {
		return name
	}
	if name := os.Getenv("LOGNAME"); name != "" {
		return name
	}
	return "anonymous"
}
