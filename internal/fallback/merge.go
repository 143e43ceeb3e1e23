package fallback

import (
	"context"
	"errors"

	"github.com/five82/setlist/internal/remote"
)

var errNoRemote = errors.New("no remote configured")

// merge concatenates sources, keeping one record per key. A later source
// wins a collision and takes the slot of the record it supersedes, so the
// first-seen order is stable.
func merge[T any](key func(T) int64, sources ...[]T) []T {
	n := 0
	for _, src := range sources {
		n += len(src)
	}
	out := make([]T, 0, n)
	index := make(map[int64]int, n)
	for _, src := range sources {
		for _, item := range src {
			k := key(item)
			if i, ok := index[k]; ok {
				out[i] = item
				continue
			}
			index[k] = len(out)
			out = append(out, item)
		}
	}
	return out
}

// listWithFallback is the shared read path for collections: the offline
// records always form the base, and the service's records are merged on top
// when the call succeeds.
func listWithFallback[T any](
	ctx context.Context,
	c *Client,
	op string,
	fetch func(context.Context, remote.API) ([]T, error),
	offline func() []T,
	key func(T) int64,
) []T {
	var fetched []T
	err := c.call(ctx, op, func(ctx context.Context, api remote.API) error {
		items, err := fetch(ctx, api)
		fetched = items
		return err
	})
	if err != nil {
		return merge(key, offline())
	}
	return merge(key, offline(), fetched)
}

// getWithFallback is the shared read path for single records. ok is false
// when neither the service nor the offline records know id.
func getWithFallback[T any](
	ctx context.Context,
	c *Client,
	op string,
	id int64,
	fetch func(context.Context, remote.API, int64) (T, error),
	offline func() []T,
	key func(T) int64,
) (T, bool) {
	var fetched T
	err := c.call(ctx, op, func(ctx context.Context, api remote.API) error {
		item, err := fetch(ctx, api, id)
		fetched = item
		return err
	})
	if err == nil {
		return fetched, true
	}
	var found T
	ok := false
	for _, item := range offline() {
		if key(item) == id {
			found, ok = item, true
		}
	}
	return found, ok
}
