// Package storage persists guessed fragments keyed by calldata
// selector on top of a badger key/value store, down to the handful of
// operations a history store actually needs: put, get, and a prefix
// scan for eviction.
package storage

import (
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/openabi/calldata-guesser/pkg/fragment"
)

const historyKeyPrefix = "h:"

// HistoryStore persists guessed fragments across process restarts, so
// a selector seen once doesn't have to be re-inferred from scratch.
// This is the cross-call memoization layer; core/inferencer itself
// stays unmemoized (see DESIGN.md).
type HistoryStore struct {
	db *badger.DB
}

// HistoryEntry is what gets persisted for a selector: the accepted
// fragment plus the raw calldata sample it was guessed from, so a
// later cache hit can still be explained to a caller.
type HistoryEntry struct {
	Selector string             `json:"selector"`
	Fragment *fragment.Fragment `json:"fragment"`
	Sample   []byte             `json:"sample"`
	StoredAt int64              `json:"stored_at"`
}

// Open opens (creating if necessary) a badger database rooted at path.
func Open(path string) (*HistoryStore, error) {
	opts := badger.DefaultOptions(path).WithSyncWrites(true)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("history: opening badger at %q: %w", path, err)
	}
	return &HistoryStore{db: db}, nil
}

func (h *HistoryStore) Close() error {
	return h.db.Close()
}

func key(selector string) []byte {
	return []byte(historyKeyPrefix + selector)
}

// Put stores entry under its own selector.
func (h *HistoryStore) Put(entry HistoryEntry) error {
	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("history: marshaling entry for %s: %w", entry.Selector, err)
	}
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(entry.Selector), encoded)
	})
}

// Get returns the stored entry for selector, or ok=false if none exists.
func (h *HistoryStore) Get(selector string) (HistoryEntry, bool, error) {
	var entry HistoryEntry
	found := false
	err := h.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(selector))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return HistoryEntry{}, false, fmt.Errorf("history: reading %s: %w", selector, err)
	}
	return entry, found, nil
}

// Selectors lists every selector currently persisted, for the periodic
// eviction job to walk.
func (h *HistoryStore) Selectors() ([]string, error) {
	var selectors []string
	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(historyKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().KeyCopy(nil)
			selectors = append(selectors, string(k[len(historyKeyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("history: listing selectors: %w", err)
	}
	return selectors, nil
}

// Delete removes a selector's entry, used by the eviction job.
func (h *HistoryStore) Delete(selector string) error {
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(selector))
	})
}
