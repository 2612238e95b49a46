package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/growingtext/internal/config"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "growtext.toml")

	out, err := runRoot(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	var written config.Config
	_, err = toml.DecodeFile(path, &written)
	require.NoError(t, err)
	assert.Equal(t, config.Default().View, written.View)
	assert.Equal(t, "mocha", written.TUI.Theme)
}

func TestConfigInit_DefaultPathInHome(t *testing.T) {
	isolate(t)

	_, err := runRoot(t, "config", "init")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".growtext.toml"))
}

func TestConfigInit_RefusesToOverwrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "growtext.toml")
	require.NoError(t, os.WriteFile(path, []byte("debug = true\n"), 0o644))

	_, err := runRoot(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug = true\n", string(data))
}
