package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/KaiqueGovani/microtetris/internal/scores"
	"github.com/KaiqueGovani/microtetris/internal/term"
	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	loadEnv()
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	log, closeLog, err := newLogger(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
	}
	defer closeLog()

	path, err := configPath()
	if err != nil {
		log.Warn().Err(err).Msg("no config dir")
	}
	config := defaultConfig()
	if path != "" {
		if config, err = loadConfig(path); err != nil {
			log.Warn().Err(err).Msg("config ignored")
		}
	}
	set, err := resolve(config, opts, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "microtetris: %v\n", err)
		return 1
	}
	if opts.saveConfig && path != "" {
		if err := saveConfig(path, set.config(config.Name)); err != nil {
			fmt.Fprintf(os.Stderr, "microtetris: save config: %v\n", err)
			return 1
		}
	}

	dir, err := scores.StateDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	store, closeStore, err := openStore(set, dir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: open high scores: %v\n", err)
		return 1
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sound := newSound(set.sound, log)
	session := tetris.NewSession(
		tetris.WithKeymap(set.keys),
		tetris.WithLogger(log),
		tetris.WithListener(sound.OnEvent),
	)
	board := newScoreboard(store, set.name, log)
	log.Info().
		Str("frontend", set.frontend).
		Str("store", set.store).
		Str("keys", set.keys.String()).
		Bool("sound", sound.Enabled()).
		Msg("microtetris start")

	if set.frontend == frontendTcell {
		err = runTerminal(ctx, session, board, set.keys, log)
	} else {
		err = runTea(ctx, session, board, set.theme, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("exit")
		fmt.Fprintf(os.Stderr, "microtetris: %v\n", err)
		return 1
	}
	return 0
}

func runTerminal(ctx context.Context, s *tetris.Session, board *scoreboard, keys tetris.Keymap, log zerolog.Logger) error {
	t, err := term.Open(keys, log)
	if err != nil {
		return err
	}
	defer t.Close()
	announcer := &termAnnouncer{board: board, term: t, keys: keys, linger: lingerDuration}
	loop := tetris.NewLoop(s, t, t, t, tetris.WithAnnouncer(announcer), tetris.WithLoopLogger(log))
	return loop.Run(ctx)
}

func runTea(ctx context.Context, s *tetris.Session, board *scoreboard, theme Theme, log zerolog.Logger) error {
	program := tea.NewProgram(NewModel(s, board, theme, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
