package projections

import (
	"context"
	"encoding/json"
	"log/slog"
)

// readThrough returns the cached view for key when present, otherwise loads,
// stores and returns a fresh one. Cache faults degrade to a direct load.
// The generation observed before loading guards the store, so a load that
// overlaps an invalidation is returned to its caller but never cached.
// INVARIANT: a nil cache always loads from storage
func readThrough[T any](ctx context.Context, cache ViewCache, collection, key string, load func(context.Context) (T, error)) (T, error) {
	var gen int64
	storable := false
	if cache != nil {
		raw, g, ok, err := cache.Get(ctx, collection, key)
		switch {
		case err != nil:
			slog.Warn("cache_event", "event", "cache_get_failed", "collection", collection, "error", err)
		case ok:
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
			slog.Warn("cache_event", "event", "cache_decode_failed", "collection", collection, "key", key)
			gen, storable = g, true
		default:
			gen, storable = g, true
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if storable {
		raw, err := json.Marshal(v)
		if err == nil {
			err = cache.Put(ctx, collection, key, gen, raw)
		}
		if err != nil {
			slog.Warn("cache_event", "event", "cache_put_failed", "collection", collection, "error", err)
		}
	}
	return v, nil
}
