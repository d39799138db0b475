package summary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=summary_test

const (
	megabyte         = 1024 * 1024
	cacheExpireAfter = 24 * time.Hour
)

type summaryStore interface {
	Get(ctx context.Context, userID string, weekStart time.Time) (*WeeklySummary, error)
	Upsert(ctx context.Context, s WeeklySummary) error
}

// CachedStore keeps recently used summaries in memory in front of the persistent store.
type CachedStore struct {
	store summaryStore
	cache *freecache.Cache
}

func NewCachedStore(store summaryStore, cacheSizeMegabytes int) *CachedStore {
	if cacheSizeMegabytes <= 0 {
		cacheSizeMegabytes = 1
	}
	return &CachedStore{
		store: store,
		cache: freecache.NewCache(cacheSizeMegabytes * megabyte),
	}
}

func (c *CachedStore) Get(ctx context.Context, userID string, weekStart time.Time) (*WeeklySummary, error) {
	key := []byte(cacheKey(userID, weekStart))
	if cached, err := c.cache.Get(key); err == nil {
		s := &WeeklySummary{}
		if err = json.Unmarshal(cached, s); err == nil {
			log.Tracef("summary %s found in cache", key)
			return s, nil
		}
		log.Errorf("failed to unmarshal cached summary %s: %s", key, err)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Debugf("summary cache get %s: %s", key, err)
	}

	s, err := c.store.Get(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	c.set(key, *s)
	return s, nil
}

func (c *CachedStore) Upsert(ctx context.Context, s WeeklySummary) error {
	if err := c.store.Upsert(ctx, s); err != nil {
		return err
	}
	c.set([]byte(cacheKey(s.UserID, s.WeekStart)), s)
	return nil
}

func (c *CachedStore) set(key []byte, s WeeklySummary) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Errorf("failed to marshal summary %s: %s", key, err)
		return
	}
	if err := c.cache.Set(key, data, int(cacheExpireAfter.Seconds())); err != nil {
		log.Errorf("failed to write summary cache %s: %s", key, err)
	}
}
