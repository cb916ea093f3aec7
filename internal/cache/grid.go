package cache

import (
	"context"
	"log/slog"
	"time"

	"sheetfolio/internal/core"
	ports "sheetfolio/internal/sheets"
)

// CachedReader memoizes grids read through another GridReader. Grids are
// copied on the way in and out, so callers may modify what they get.
type CachedReader struct {
	next  ports.GridReader
	cache *LRUCache[core.Grid]
}

var _ ports.GridReader = (*CachedReader)(nil)

// NewCachedReader wraps next with an LRU cache of size entries for ttl.
func NewCachedReader(next ports.GridReader, size int, ttl time.Duration) *CachedReader {
	return &CachedReader{next: next, cache: NewLRUCache[core.Grid](size, ttl)}
}

// Cache exposes the underlying cache, e.g. to register it with a Manager.
func (r *CachedReader) Cache() *LRUCache[core.Grid] {
	return r.cache
}

func gridKey(spreadsheetID, rng string) string {
	return spreadsheetID + "!" + rng
}

// ReadGrid implements sheets.GridReader.
func (r *CachedReader) ReadGrid(ctx context.Context, spreadsheetID, rng string) (core.Grid, error) {
	key := gridKey(spreadsheetID, rng)
	if g, ok := r.cache.Get(key); ok {
		slog.DebugContext(ctx, "Grid cache hit", "range", rng)
		return g.Clone(), nil
	}
	g, err := r.next.ReadGrid(ctx, spreadsheetID, rng)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, g.Clone())
	return g, nil
}

// Invalidate drops one cached range.
func (r *CachedReader) Invalidate(spreadsheetID, rng string) {
	r.cache.Delete(gridKey(spreadsheetID, rng))
}
