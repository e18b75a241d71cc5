package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(storeKeyLastDailyCheck, "2026-08-31"))
	require.NoError(t, store.Set(storeKeyIsAdmin, "true"))
	require.NoError(t, store.Delete(storeKeyIsAdmin))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	date, ok := reopened.Get(storeKeyLastDailyCheck)
	require.True(t, ok)
	require.Equal(t, "2026-08-31", date)

	_, ok = reopened.Get(storeKeyIsAdmin)
	require.False(t, ok)
}

func TestFileStoreMissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	_, ok := store.Get(storeKeyUser)
	require.False(t, ok)
}
