package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), config)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "microtetris", "config.json")
	want := Config{Theme: "Volcanic", Sound: false, Keys: "asdf pqr", Frontend: frontendTcell, Store: storeSQLite, Name: "ada"}
	require.NoError(t, saveConfig(path, want))

	got, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store":"json"}`), 0o644))

	got, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, storeJSON, got.Store)
	assert.Equal(t, frontendTea, got.Frontend)
	assert.True(t, got.Sound)
}

func TestLoadConfigCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	got, err := loadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, defaultConfig(), got)
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("LOGNAME", "grace")
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	s, err := resolve(defaultConfig(), opts, env(nil))
	require.NoError(t, err)
	assert.Equal(t, tetris.DefaultKeymap(), s.keys)
	assert.Equal(t, frontendTea, s.frontend)
	assert.Equal(t, storeFlat, s.store)
	assert.Equal(t, themes[0], s.theme)
	assert.True(t, s.sound)
	assert.Equal(t, "grace", s.name)
	assert.False(t, s.sync)
}

func TestResolvePrecedence(t *testing.T) {
	config := defaultConfig()
	config.Keys = "asdf pqr"
	config.Store = storeJSON

	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	s, err := resolve(config, opts, env(nil))
	require.NoError(t, err)
	assert.Equal(t, 'a', s.keys.Key(tetris.ActionLeft), "file over default")

	s, err = resolve(config, opts, env(map[string]string{envKeys: "zxcv pqr"}))
	require.NoError(t, err)
	assert.Equal(t, 'z', s.keys.Key(tetris.ActionLeft), "env over file")

	opts, err = parseFlags([]string{"-keys", "uiom pqr", "-store", "sqlite", "-mute", "-theme", "ocean neon"}, io.Discard)
	require.NoError(t, err)
	s, err = resolve(config, opts, env(map[string]string{envKeys: "zxcv pqr"}))
	require.NoError(t, err)
	assert.Equal(t, 'u', s.keys.Key(tetris.ActionLeft), "flag over env")
	assert.Equal(t, storeSQLite, s.store)
	assert.False(t, s.sound)
	assert.Equal(t, "Ocean Neon", s.theme.Name)
}

func TestResolveScoreSync(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	s, err := resolve(defaultConfig(), opts, env(map[string]string{
		envScoreAPIURL: " https://scores.example ",
		envScoreAPIKey: "k",
		envScoreSync:   "TRUE",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://scores.example", s.scoreURL)
	assert.Equal(t, "k", s.scoreKey)
	assert.True(t, s.sync)
}

func TestResolveErrors(t *testing.T) {
	cases := map[string][]string{
		"keys":     {"-keys", "abc"},
		"frontend": {"-frontend", "gtk"},
		"store":    {"-store", "redis"},
		"theme":    {"-theme", "nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			opts, err := parseFlags(args, io.Discard)
			require.NoError(t, err)
			_, err = resolve(defaultConfig(), opts, env(nil))
			assert.Error(t, err)
		})
	}

	opts, err := parseFlags([]string{"-keys", "abc"}, io.Discard)
	require.NoError(t, err)
	_, err = resolve(defaultConfig(), opts, env(nil))
	assert.ErrorIs(t, err, tetris.ErrKeymapLength)
}

func TestSettingsConfig(t *testing.T) {
	opts, err := parseFlags([]string{"-frontend", "tcell"}, io.Discard)
	require.NoError(t, err)
	s, err := resolve(defaultConfig(), opts, env(nil))
	require.NoError(t, err)

	c := s.config("")
	assert.Equal(t, frontendTcell, c.Frontend)
	assert.Equal(t, tetris.DefaultKeys, c.Keys)
	assert.Empty(t, c.Name)
}

func TestSetDefaultEnv(t *testing.T) {
	t.Setenv(envScoreAPIURL, "from-env")
	setDefaultEnv(envScoreAPIURL, "baked-in")
	assert.Equal(t, "from-env", os.Getenv(envScoreAPIURL))

	require.NoError(t, os.Unsetenv(envScoreAPIURL))
	setDefaultEnv(envScoreAPIURL, "baked-in")
	assert.Equal(t, "baked-in", os.Getenv(envScoreAPIURL))
}
