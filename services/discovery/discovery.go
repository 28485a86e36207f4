package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/logger"
)

const defaultPageSize = 20

// minCandidatePool keeps the retrieval cap from collapsing for tiny pages;
// the later pruning stages need headroom to work with.
const minCandidatePool = 20

// ProductFinder represents the product store operations needed by a search.
type ProductFinder interface {
	FindCandidates(ctx context.Context, filter catalogdb.CandidateFilter, limit int) ([]catalogdb.Product, error)
}

// SellerGetter represents the seller store operations needed by a search.
type SellerGetter interface {
	GetSeller(ctx context.Context, id string) (*catalogdb.Seller, error)
}

// ReviewLister represents the review store operations needed by a search.
type ReviewLister interface {
	ListPublishedReviews(ctx context.Context, sellerID string) ([]catalogdb.Review, error)
}

type Service struct {
	logger   logger.Logger
	products ProductFinder
	sellers  SellerGetter
	reviews  ReviewLister
}

func New(logger logger.Logger, products ProductFinder, sellers SellerGetter, reviews ReviewLister) *Service {
	return &Service{
		logger:   logger,
		products: products,
		sellers:  sellers,
		reviews:  reviews,
	}
}

// Search runs the full discovery pipeline: candidate retrieval, text match,
// seller resolution with geographic pruning, delivery and reputation
// filtering, ranking, pagination. A store failure surfaces as an error so
// callers can tell "no results" apart from "search could not be performed";
// gaps in individual seller records never do.
func (s *Service) Search(ctx context.Context, query Query) (*Result, error) {
	startedAt := time.Now()

	if err := validateGeoRequest(query); err != nil {
		return nil, err
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	// Oversized pool: the geographic and reputation stages prune client-side,
	// so retrieval fetches twice the page to leave headroom.
	poolLimit := 2 * pageSize
	if poolLimit < minCandidatePool {
		poolLimit = minCandidatePool
	}

	pool, err := s.products.FindCandidates(ctx, candidateFilter(query, time.Now().UTC()), poolLimit)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve candidates: %w", err)
	}

	candidates := make([]Product, len(pool))
	for i, product := range pool {
		candidates[i] = Product{Product: product}
	}

	// Seller resolution happens before the text stage because seller and farm
	// names are part of the searchable text. One lookup per distinct seller.
	resolved := s.resolveSellers(ctx, distinctSellerIDs(candidates))
	candidates = attachSellerInfo(candidates, resolved)

	candidates = filterByText(candidates, query.Text)

	if query.VerifiedOnly {
		candidates = filterByVerified(candidates, resolved)
	}

	if query.Position != nil {
		positions := make(map[string]*catalogdb.Position, len(resolved))
		for sellerID, info := range resolved {
			positions[sellerID] = info.position
		}
		candidates = filterByRadius(candidates, *query.Position, query.RadiusKm, positions)
	}

	candidates = filterByDelivery(candidates, query.DeliveryMethods)

	candidates = s.filterByReputation(ctx, candidates, query.MinSellerRating)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rank(candidates, query.SortBy)

	return assemble(candidates, pageSize, startedAt), nil
}

// validateGeoRequest rejects queries that ask for geography-dependent
// behavior without supplying a usable position. This is the one query shape
// that is an error rather than a degradation: the caller explicitly asked
// for geography.
func validateGeoRequest(query Query) error {
	geoRequested := query.RadiusKm > 0 || query.SortBy == SortDistance
	if !geoRequested {
		return nil
	}
	if query.Position == nil || !query.Position.Valid() {
		return ErrMissingPosition
	}
	return nil
}

// candidateFilter maps the query onto the predicates the store evaluates.
// The in-season predicate is pinned to the request's wall-clock month in UTC.
func candidateFilter(query Query, now time.Time) catalogdb.CandidateFilter {
	filter := catalogdb.CandidateFilter{
		Categories:    query.Categories,
		MinPriceCents: query.MinPriceCents,
		MaxPriceCents: query.MaxPriceCents,
		Organic:       query.Organic,
		Availability:  query.Availability,
		Freshness:     query.Freshness,
	}

	if query.InSeason {
		month := now.Month()
		filter.InSeasonMonth = &month
	}

	return filter
}

func attachSellerInfo(candidates []Product, resolved map[string]sellerInfo) []Product {
	for i, candidate := range candidates {
		info, ok := resolved[candidate.SellerID]
		if !ok {
			continue
		}
		candidates[i].SellerName = info.displayName
		candidates[i].FarmName = info.farmName
		candidates[i].SellerVerified = info.verified
	}

	return candidates
}

// filterByVerified keeps candidates whose seller resolved and is verified.
// An unresolved seller counts as unverified.
func filterByVerified(candidates []Product, resolved map[string]sellerInfo) []Product {
	kept := make([]Product, 0, len(candidates))
	for _, candidate := range candidates {
		if info, ok := resolved[candidate.SellerID]; ok && info.verified {
			kept = append(kept, candidate)
		}
	}

	return kept
}

// filterByDelivery keeps candidates offering at least one of the requested
// fulfillment methods. An empty request set is a pass-through.
func filterByDelivery(candidates []Product, requested []string) []Product {
	if len(requested) == 0 {
		return candidates
	}

	kept := make([]Product, 0, len(candidates))
	for _, candidate := range candidates {
		if intersects(candidate.DeliveryMethods, requested) {
			kept = append(kept, candidate)
		}
	}

	return kept
}

func intersects(a, b []string) bool {
	for _, left := range a {
		for _, right := range b {
			if left == right {
				return true
			}
		}
	}
	return false
}

// assemble slices the first page off the filtered, ranked candidates and
// derives the distinct-seller list from the returned page. It always yields
// a well-formed result, empty input included.
func assemble(candidates []Product, pageSize int, startedAt time.Time) *Result {
	totalFound := len(candidates)

	page := candidates
	if len(page) > pageSize {
		page = page[:pageSize]
	}

	sellerIndex := make(map[string]int, len(page))
	sellers := make([]SellerSummary, 0, len(page))
	for _, product := range page {
		if i, ok := sellerIndex[product.SellerID]; ok {
			sellers[i].ProductCount++
			continue
		}
		sellerIndex[product.SellerID] = len(sellers)
		sellers = append(sellers, SellerSummary{
			ID:           product.SellerID,
			DisplayName:  product.SellerName,
			FarmName:     product.FarmName,
			Verified:     product.SellerVerified,
			ProductCount: 1,
		})
	}

	return &Result{
		Products:   page,
		Sellers:    sellers,
		HasMore:    totalFound > pageSize,
		TotalFound: totalFound,
		StartedAt:  startedAt,
	}
}
