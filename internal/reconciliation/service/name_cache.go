package service

import (
	"context"

	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
)

// nameCache batches client-name lookups for one refresh cycle. Names do not
// change mid-cycle, so entries are never invalidated; a fresh cache is built
// per cycle.
type nameCache struct {
	store   ledgerdomain.Store
	entries map[string]ledgerdomain.ClientName
	misses  map[string]struct{}
}

func newNameCache(store ledgerdomain.Store) *nameCache {
	return &nameCache{
		store:   store,
		entries: make(map[string]ledgerdomain.ClientName),
		misses:  make(map[string]struct{}),
	}
}

// resolve fetches the codes not seen yet in one batched call and returns the
// full lookup table accumulated so far. Codes unknown upstream are remembered
// as misses so they are not re-fetched every page.
func (c *nameCache) resolve(ctx context.Context, codes []string) (map[string]ledgerdomain.ClientName, error) {
	missing := make([]string, 0)
	for _, code := range codes {
		if code == "" {
			continue
		}
		if _, ok := c.entries[code]; ok {
			continue
		}
		if _, ok := c.misses[code]; ok {
			continue
		}
		missing = append(missing, code)
	}

	if len(missing) > 0 {
		fetched, err := c.store.FetchClientNames(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, code := range missing {
			if name, ok := fetched[code]; ok {
				c.entries[code] = name
			} else {
				c.misses[code] = struct{}{}
			}
		}
	}

	return c.entries, nil
}
