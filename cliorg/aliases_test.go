package cliorg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAliases(t *testing.T) *Aliases {
	t.Helper()
	return NewAliases(filepath.Join(t.TempDir(), "aliases.yaml"))
}

func TestResolveMissingFile(t *testing.T) {
	a := newTestAliases(t)

	got, err := a.Resolve("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got, "inputs resolve to themselves without an alias file")
}

func TestSetAndResolve(t *testing.T) {
	a := newTestAliases(t)
	require.NoError(t, a.Set("my-hub", "hub@example.com"))

	got, err := a.Resolve("my-hub")
	require.NoError(t, err)
	assert.Equal(t, "hub@example.com", got)

	got, err = a.Resolve("unaliased@example.com")
	require.NoError(t, err)
	assert.Equal(t, "unaliased@example.com", got)
}

func TestSetOverwrites(t *testing.T) {
	a := newTestAliases(t)
	require.NoError(t, a.Set("my-org", "old@example.com"))
	require.NoError(t, a.Set("my-org", "new@example.com"))

	got, err := a.Resolve("my-org")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got)
}

func TestUnset(t *testing.T) {
	a := newTestAliases(t)
	require.NoError(t, a.Set("my-org", "user@example.com"))
	require.NoError(t, a.Unset("my-org"))

	got, err := a.Resolve("my-org")
	require.NoError(t, err)
	assert.Equal(t, "my-org", got)
}

func TestUnsetMissingAlias(t *testing.T) {
	a := newTestAliases(t)
	assert.NoError(t, a.Unset("never-set"))
}
