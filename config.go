package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaiqueGovani/microtetris/internal/scores"
	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

const (
	frontendTea   = "tea"
	frontendTcell = "tcell"

	storeFlat   = "flat"
	storeJSON   = "json"
	storeSQLite = "sqlite"
)

// Config is the JSON file in the user config directory.
type Config struct {
	Theme    string `json:"theme"`
	Sound    bool   `json:"sound"`
	Keys     string `json:"keys"`
	Frontend string `json:"frontend"`
	Store    string `json:"store"`
	Name     string `json:"name"`
}

func defaultConfig() Config {
	return Config{
		Theme:    themes[0].Name,
		Sound:    true,
		Keys:     tetris.DefaultKeys,
		Frontend: frontendTea,
		Store:    storeFlat,
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

func saveConfig(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func configPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "microtetris", "config.json"), nil
}

type options struct {
	debug      bool
	frontend   string
	keys       string
	store      string
	theme      string
	mute       bool
	saveConfig bool

	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	flags := flag.NewFlagSet("microtetris", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&opts.debug, "debug", false, "write a debug log to "+filepath.Join(os.TempDir(), debugLogName))
	flags.StringVar(&opts.frontend, "frontend", "", "user interface: tea or tcell")
	flags.StringVar(&opts.keys, "keys", "", "8 keys for left, rotate, reverse rotate, right, drop, pause, quit, restart")
	flags.StringVar(&opts.store, "store", "", "high-score store: flat, json or sqlite")
	flags.StringVar(&opts.theme, "theme", "", "color theme name")
	flags.BoolVar(&opts.mute, "mute", false, "disable sound")
	flags.BoolVar(&opts.saveConfig, "save-config", false, "write the effective settings to the config file")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	opts.set = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// settings is the effective configuration after layering flags over the
// environment over the config file.
type settings struct {
	keys     tetris.Keymap
	frontend string
	store    string
	theme    Theme
	sound    bool
	name     string

	scoreURL string
	scoreKey string
	sync     bool
}

func resolve(config Config, opts options, getenv func(string) string) (settings, error) {
	keys := config.Keys
	if v := getenv(envKeys); v != "" {
		keys = v
	}
	if opts.set["keys"] {
		keys = opts.keys
	}
	if keys == "" {
		keys = tetris.DefaultKeys
	}
	keymap, err := tetris.ParseKeymap(keys)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		keys:     keymap,
		frontend: pick(opts.set["frontend"], opts.frontend, config.Frontend, frontendTea),
		store:    pick(opts.set["store"], opts.store, config.Store, storeFlat),
		sound:    config.Sound && !opts.mute,
		name:     scores.PlayerName(config.Name),
		scoreURL: strings.TrimSpace(getenv(envScoreAPIURL)),
		scoreKey: strings.TrimSpace(getenv(envScoreAPIKey)),
		sync:     strings.EqualFold(strings.TrimSpace(getenv(envScoreSync)), "true"),
	}

	switch s.frontend {
	case frontendTea, frontendTcell:
	default:
		return settings{}, fmt.Errorf("unknown frontend %q", s.frontend)
	}
	switch s.store {
	case storeFlat, storeJSON, storeSQLite:
	default:
		return settings{}, fmt.Errorf("unknown store %q", s.store)
	}

	name := pick(opts.set["theme"], opts.theme, config.Theme, themes[0].Name)
	i := themeIndexByName(name)
	if i < 0 {
		return settings{}, fmt.Errorf("unknown theme %q", name)
	}
	s.theme = themes[i]
	return s, nil
}

func pick(flagSet bool, flagValue, fileValue, def string) string {
	if flagSet {
		return flagValue
	}
	if fileValue != "" {
		return fileValue
	}
	return def
}

// config returns s in the form saved to the config file.
func (s settings) config(name string) Config {
	return Config{
		Theme:    s.theme.Name,
		Sound:    s.sound,
		Keys:     s.keys.String(),
		Frontend: s.frontend,
		Store:    s.store,
		Name:     name,
	}
}
