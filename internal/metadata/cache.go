package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vmunix/strmsync/pkg/anilist"
)

// Cache is a SQLite-backed TTL store for provider responses.
// Expiry times are stored in UTC so they compare as text.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// NewCache creates a cache over the metadata_cache table.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db, now: time.Now}
}

// Get returns the value for key. Missing and expired entries report false.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value string
	var expiresAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM metadata_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)
	if err != nil || !c.now().Before(expiresAt) {
		return nil, false
	}
	return []byte(value), true
}

// Set stores value under key until ttl elapses.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), c.now().Add(ttl).UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Prune removes expired entries and returns how many were dropped.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM metadata_cache WHERE expires_at <= ?", c.now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// CachedSearcher answers repeated searches from the cache. Only hits are
// stored; a title AniList did not know is asked again next time.
type CachedSearcher struct {
	next  Searcher
	cache *Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedSearcher wraps next with cache.
func NewCachedSearcher(next Searcher, cache *Cache, ttl time.Duration, log *slog.Logger) *CachedSearcher {
	return &CachedSearcher{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log.With("component", "metadata"),
	}
}

func (s *CachedSearcher) SearchAnime(ctx context.Context, query string) (*anilist.Media, error) {
	key := searchKey(query)

	if data, ok := s.cache.Get(ctx, key); ok {
		var m anilist.Media
		if err := json.Unmarshal(data, &m); err == nil {
			s.log.Debug("metadata cache hit", "query", query, "provider_id", m.ID)
			return &m, nil
		}
		s.log.Warn("discarding unreadable cache entry", "key", key)
	}

	m, err := s.next.SearchAnime(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(m); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.log.Warn("metadata cache write failed", "query", query, "error", err)
		}
	}
	return m, nil
}

func searchKey(query string) string {
	return "anilist:search:" + strings.ToLower(strings.TrimSpace(query))
}
