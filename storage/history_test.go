package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openabi/calldata-guesser/pkg/fragment"
)

func openTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHistoryStorePutGet(t *testing.T) {
	store := openTestStore(t)

	entry := HistoryEntry{
		Selector: "a9059cbb",
		Fragment: &fragment.Fragment{
			Name:   "guessed_a9059cbb",
			Inputs: []fragment.Param{fragment.Address(), fragment.Uint256()},
		},
		Sample:   []byte{0xde, 0xad, 0xbe, 0xef},
		StoredAt: 1700000000,
	}
	require.NoError(t, store.Put(entry))

	got, ok, err := store.Get("a9059cbb")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Selector, got.Selector)
	assert.Equal(t, entry.Fragment.Signature(), got.Fragment.Signature())
	assert.Equal(t, entry.StoredAt, got.StoredAt)
}

func TestHistoryStoreGetMiss(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("deadbeef")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryStoreSelectorsAndDelete(t *testing.T) {
	store := openTestStore(t)

	for _, sel := range []string{"11111111", "22222222", "33333333"} {
		require.NoError(t, store.Put(HistoryEntry{Selector: sel, Fragment: &fragment.Fragment{Name: "guessed_" + sel}}))
	}

	selectors, err := store.Selectors()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"11111111", "22222222", "33333333"}, selectors)

	require.NoError(t, store.Delete("22222222"))

	selectors, err = store.Selectors()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"11111111", "33333333"}, selectors)

	_, ok, err := store.Get("22222222")
	require.NoError(t, err)
	assert.False(t, ok)
}
