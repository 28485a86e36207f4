package discovery

import (
	"context"
	"sync"

	"github.com/freshroot/freshroot/db/catalogdb"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSellerLookups bounds the fan-out against the seller and review
// stores when a search spans many distinct sellers.
const maxConcurrentSellerLookups = 16

type sellerInfo struct {
	displayName string
	farmName    string
	verified    bool
	position    *catalogdb.Position
}

// resolveSellers fetches the current record for every given seller id, one
// lookup per distinct id, issued concurrently. A failed lookup is logged and
// the id is left out of the result; one bad seller record must not fail the
// whole search. Sellers with a missing or out-of-range position are returned
// with a nil position so only the geographic stage excludes them.
func (s *Service) resolveSellers(ctx context.Context, sellerIDs []string) map[string]sellerInfo {
	resolved := make(map[string]sellerInfo, len(sellerIDs))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentSellerLookups)

	for _, sellerID := range sellerIDs {
		sellerID := sellerID
		group.Go(func() error {
			seller, err := s.sellers.GetSeller(groupCtx, sellerID)
			if err != nil {
				s.logger.Warn("could not resolve seller, treating as missing", "seller_id", sellerID, "err", err.Error())
				return nil
			}

			info := sellerInfo{
				displayName: seller.DisplayName,
				farmName:    seller.FarmName,
				verified:    seller.Verified,
				position:    seller.ValidPosition(),
			}

			mu.Lock()
			resolved[sellerID] = info
			mu.Unlock()

			return nil
		})
	}

	// Lookup errors are swallowed above, so Wait only reflects ctx cancellation,
	// which the caller observes through its own ctx.
	group.Wait()

	return resolved
}

// distinctSellerIDs returns the distinct seller ids referenced by the
// candidates, in first-seen order.
func distinctSellerIDs(candidates []Product) []string {
	seen := make(map[string]struct{}, len(candidates))
	ids := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate.SellerID]; ok {
			continue
		}
		seen[candidate.SellerID] = struct{}{}
		ids = append(ids, candidate.SellerID)
	}

	return ids
}
