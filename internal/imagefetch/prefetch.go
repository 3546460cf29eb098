package imagefetch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel downloads when no limit is given.
const DefaultConcurrency = 4

// Prefetch fetches every distinct URL with at most limit downloads in
// flight and returns once all of them have resolved. URLs that failed map
// to nil. The result is complete before any drawing starts, so the layout
// step only has to look up whether an image exists.
func Prefetch(ctx context.Context, src Source, urls []string, limit int) map[string]*Image {
	results := make(map[string]*Image, len(urls))
	if src == nil || len(urls) == 0 {
		return results
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true

		g.Go(func() error {
			img := src.Fetch(gctx, u)
			mu.Lock()
			results[u] = img
			mu.Unlock()
			return nil
		})
	}

	// Fetch never returns errors; Wait only joins the goroutines.
	_ = g.Wait()
	return results
}
