package discovery

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// filterByReputation keeps candidates whose seller's mean published-review
// rating is at least minRating. A seller with no published reviews, or whose
// reviews could not be read, aggregates to 0 and is excluded whenever the
// floor is positive. This runs after the cheaper filters so the review store
// is only scanned for the sellers that are still in play.
func (s *Service) filterByReputation(ctx context.Context, candidates []Product, minRating float64) []Product {
	if minRating <= 0 || len(candidates) == 0 {
		return candidates
	}

	ratings := s.aggregateSellerRatings(ctx, distinctSellerIDs(candidates))

	kept := make([]Product, 0, len(candidates))
	for _, candidate := range candidates {
		if ratings[candidate.SellerID] >= minRating {
			kept = append(kept, candidate)
		}
	}

	return kept
}

// aggregateSellerRatings computes the mean published rating per seller, one
// review-store query per distinct seller, issued concurrently. A failed query
// is logged and that seller keeps the zero rating.
func (s *Service) aggregateSellerRatings(ctx context.Context, sellerIDs []string) map[string]float64 {
	ratings := make(map[string]float64, len(sellerIDs))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentSellerLookups)

	for _, sellerID := range sellerIDs {
		sellerID := sellerID
		group.Go(func() error {
			reviews, err := s.reviews.ListPublishedReviews(groupCtx, sellerID)
			if err != nil {
				s.logger.Warn("could not aggregate seller rating, treating as unrated", "seller_id", sellerID, "err", err.Error())
				return nil
			}
			if len(reviews) == 0 {
				return nil
			}

			var sum float64
			for _, review := range reviews {
				sum += review.Rating
			}

			mu.Lock()
			ratings[sellerID] = sum / float64(len(reviews))
			mu.Unlock()

			return nil
		})
	}

	group.Wait()

	return ratings
}
