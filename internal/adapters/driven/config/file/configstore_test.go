package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.ConfigKeyBackendURL, "https://vault.example"))
	require.NoError(t, store.Set("refresh_minutes", int64(15)))
	require.NoError(t, store.Set("offline_mode", true))

	assert.Equal(t, "https://vault.example", store.GetString(driven.ConfigKeyBackendURL))
	assert.Equal(t, 15, store.GetInt("refresh_minutes"))
	assert.True(t, store.GetBool("offline_mode"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigKeyAPIToken, "secret"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", reopened.GetString(driven.ConfigKeyAPIToken))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[backend]\nurl = \"https://vault.example\"\ntimeout = 30\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://vault.example", store.GetString("backend.url"))
	assert.Equal(t, 30, store.GetInt("backend.timeout"))
}

func TestConfigStore_RestrictedPermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigKeyAPIToken, "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWatcher_ReloadsOnExternalWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigKeyUserName, "before"))

	reloaded := make(chan struct{}, 1)
	watcher, err := NewWatcher(store, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer watcher.Close()

	// Simulate an external edit of the config file.
	content := "user_name = \"after\"\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reloaded")
	}

	assert.Equal(t, "after", store.GetString(driven.ConfigKeyUserName))
}
