package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp executes the app with a temp home and cache, capturing stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dbPath := filepath.Join(t.TempDir(), "test.db")

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	app := newApp()
	runErr := app.Run(append([]string{appName, "--db", dbPath}, args...))

	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, appName, app.Name)

	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"object", "module", "repo", "analyze", "auth", "reset"} {
		assert.True(t, names[want], "missing command: %s", want)
	}
}

func TestAppModuleList_Empty(t *testing.T) {
	out, err := runApp(t, "module", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[]")
}

func TestAppModuleInfo_NoArg(t *testing.T) {
	_, err := runApp(t, "module", "info")
	assert.Error(t, err)
}
