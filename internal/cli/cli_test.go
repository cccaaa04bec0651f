package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txsignals/internal/store"
	"txsignals/internal/user"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// fastConfig writes a config with a near-zero notifier delay so CLI
// tests don't sit through the demonstration delay.
func fastConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notifier:\n  delay: 1ms\n"), 0o644))
	return path
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "users", "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCreate_Commit(t *testing.T) {
	db := filepath.Join(t.TempDir(), "demo.db")

	out, err := execute(t, "create", "--db", db, "--config", fastConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, user.ResponseSuccess)

	// The row is visible to a separate store handle.
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	count, err := st.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreate_FailRollsBack(t *testing.T) {
	db := filepath.Join(t.TempDir(), "demo.db")

	out, err := execute(t, "create", "--db", db, "--config", fastConfig(t), "--fail")
	// A requested rollback is a successful demonstration.
	require.NoError(t, err)
	assert.Contains(t, out, user.ResponseFailure)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	count, err := st.CountUsers(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreate_JSONOutput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "demo.db")

	out, err := execute(t, "--format", "json", "create", "--db", db, "--config", fastConfig(t))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, user.ResponseSuccess, data["response"])
	assert.NotEmpty(t, data["name"])
}

func TestUsers_Empty(t *testing.T) {
	out, err := execute(t, "users", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "no users")
}

func TestUsers_ListsCommittedOnly(t *testing.T) {
	db := filepath.Join(t.TempDir(), "demo.db")
	cfgPath := fastConfig(t)

	_, err := execute(t, "create", "--db", db, "--config", cfgPath)
	require.NoError(t, err)
	_, err = execute(t, "create", "--db", db, "--config", cfgPath, "--fail")
	require.NoError(t, err)

	out, err := execute(t, "users", "--db", db)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1, "only the committed user should be listed")
}

func TestUsers_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	_, err := execute(t, "users", "--config", path, "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")
	err := WrapExitError(ExitCommandError, "context", base)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "context")

	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
