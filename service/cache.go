package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/openabi/calldata-guesser/pkg/fragment"
)

// hotCache is a bigcache layer in front of HistoryStore, held as a
// constructor-injected field rather than a package-level singleton so
// more than one Server can run in the same process.
type hotCache struct {
	cache *bigcache.BigCache
}

func newHotCache(sizeMB int) (*hotCache, error) {
	config := bigcache.DefaultConfig(10 * time.Minute)
	config.HardMaxCacheSize = sizeMB
	c, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("cache: creating bigcache: %w", err)
	}
	return &hotCache{cache: c}, nil
}

func (h *hotCache) get(selector string) (*fragment.Fragment, bool) {
	raw, err := h.cache.Get(selector)
	if err != nil {
		return nil, false
	}
	var frag fragment.Fragment
	if err := json.Unmarshal(raw, &frag); err != nil {
		return nil, false
	}
	return &frag, true
}

func (h *hotCache) set(selector string, frag *fragment.Fragment) {
	encoded, err := json.Marshal(frag)
	if err != nil {
		return
	}
	_ = h.cache.Set(selector, encoded)
}

func (h *hotCache) delete(selector string) {
	_ = h.cache.Delete(selector)
}
