package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/growingtext/internal/config"
)

// isolate points config discovery at empty directories and returns one to
// use as the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return t.TempDir()
}

func TestCheckStdinPipe(t *testing.T) {
	origStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = origStdin })

	t.Run("WithPipedData", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		os.Stdin = r

		go func() {
			defer w.Close()
			w.Write([]byte("test piped input"))
		}()

		data, hasPiped := checkStdinPipe()
		assert.True(t, hasPiped)
		assert.Equal(t, "test piped input", data)
	})

	t.Run("WithEmptyFile", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "stdin")
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		os.Stdin = f

		data, hasPiped := checkStdinPipe()
		assert.False(t, hasPiped)
		assert.Empty(t, data)
	})
}

func TestLoadConfig_FlagsOverrideLocalFile(t *testing.T) {
	cwd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ".growtext.toml"), []byte("[view]\nminLines = 2\nmaxLines = 4\n"), 0o644))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("cwd", "", "")
	cmd.Flags().Int("max-lines", 0, "")
	require.NoError(t, cmd.Flags().Set("cwd", cwd))
	require.NoError(t, cmd.Flags().Set("max-lines", "7"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.View.MinLines)
	assert.Equal(t, 7, cfg.View.MaxLines)
	assert.Equal(t, "mocha", cfg.TUI.Theme)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_UnsetFlagsKeepDefaults(t *testing.T) {
	cwd := isolate(t)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("cwd", "", "")
	cmd.Flags().Int("min-lines", 0, "")
	cmd.Flags().String("theme", "", "")
	require.NoError(t, cmd.Flags().Set("cwd", cwd))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.View.MinLines)
	assert.Equal(t, 3, cfg.View.MaxLines)
	assert.Equal(t, "mocha", cfg.TUI.Theme)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	cwd := isolate(t)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("cwd", "", "")
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.Flags().Set("cwd", cwd))
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(cwd, "nope.toml")))

	_, err := loadConfig(cmd)
	assert.NoError(t, err)
}

func TestThemeNamesListsDefaultFirst(t *testing.T) {
	names := themeNames()
	assert.Regexp(t, `^mocha, `, names)
	assert.Contains(t, names, "latte")
}

func TestOpenHistory(t *testing.T) {
	svc, err := openHistory(config.HistoryConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, svc)

	dir := filepath.Join(t.TempDir(), "history")
	svc, err = openHistory(config.HistoryConfig{Enabled: true, Dir: dir, Limit: 5})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	_, err = svc.Add(context.Background(), "kept")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "entries"))
}
