package discovery

import "sort"

// rank imposes a total order on the candidates per the requested sort key.
// An empty or unknown key leaves the order untouched: ranking is a
// refinement, never a reason to reject a search. All sorts are stable so
// ties keep the order the earlier stages produced.
func rank(candidates []Product, sortBy string) {
	switch sortBy {
	case SortDistance:
		// Candidates without a distance (geographic stage skipped or seller
		// unresolved) sort after those with one, keeping their relative order.
		sort.SliceStable(candidates, func(i, j int) bool {
			di, dj := candidates[i].DistanceKm, candidates[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})

	case SortPriceLow:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].PriceCents < candidates[j].PriceCents
		})

	case SortPriceHigh:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].PriceCents > candidates[j].PriceCents
		})

	case SortRating:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Rating > candidates[j].Rating
		})

	case SortNewest:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
		})

	case SortAvailability:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Stock > candidates[j].Stock
		})
	}
}
