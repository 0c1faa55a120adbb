package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore(t.TempDir())

	// Anonymous at first.
	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, store.Token())

	// Authenticated after Save.
	sess := &Session{
		Token:      "jwt-token",
		User:       api.User{ID: "3", Name: "Ana", Email: "ana@example.com"},
		LoggedInAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", loaded.Token)
	assert.Equal(t, "Ana", loaded.User.Name)
	assert.Equal(t, "jwt-token", store.Token())

	// Anonymous again after Clear.
	require.NoError(t, store.Clear())
	_, err = store.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// Clearing twice is a no-op.
	require.NoError(t, store.Clear())
}

func TestStore_Save_RequiresToken(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.Error(t, store.Save(nil))
	assert.Error(t, store.Save(&Session{}))
}

func TestStore_Save_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(&Session{Token: "secret"}))

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_Current_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600))

	store := NewStore(dir)
	_, err := store.Current()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)

	// A corrupt session reads as an empty token.
	assert.Empty(t, store.Token())
}
