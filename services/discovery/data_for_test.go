// Test fixtures: in-memory store fakes backing the pipeline tests.
package discovery

import (
	"context"
	"log/slog"
	"os"

	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/logger"
)

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

type fakeProductStore struct {
	products []catalogdb.Product
	err      error
}

func (f *fakeProductStore) FindCandidates(ctx context.Context, filter catalogdb.CandidateFilter, limit int) ([]catalogdb.Product, error) {
	if f.err != nil {
		return nil, f.err
	}

	matched := []catalogdb.Product{}
	for _, product := range f.products {
		if !filter.Matches(product) {
			continue
		}
		matched = append(matched, product)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

type fakeSellerStore struct {
	sellers map[string]catalogdb.Seller
	errs    map[string]error
}

func (f *fakeSellerStore) GetSeller(ctx context.Context, id string) (*catalogdb.Seller, error) {
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	seller, ok := f.sellers[id]
	if !ok {
		return nil, &catalogdb.NotFoundError{ID: id}
	}
	return &seller, nil
}

type fakeReviewStore struct {
	reviews map[string][]catalogdb.Review
	errs    map[string]error
}

func (f *fakeReviewStore) ListPublishedReviews(ctx context.Context, sellerID string) ([]catalogdb.Review, error) {
	if err := f.errs[sellerID]; err != nil {
		return nil, err
	}

	published := []catalogdb.Review{}
	for _, review := range f.reviews[sellerID] {
		if review.Status == catalogdb.ReviewStatusPublished {
			published = append(published, review)
		}
	}
	return published, nil
}

func newTestService(products *fakeProductStore, sellers *fakeSellerStore, reviews *fakeReviewStore) *Service {
	if products == nil {
		products = &fakeProductStore{}
	}
	if sellers == nil {
		sellers = &fakeSellerStore{}
	}
	if reviews == nil {
		reviews = &fakeReviewStore{}
	}
	return New(newTestLogger(), products, sellers, reviews)
}

func position(lat, lng float64) *catalogdb.Position {
	return &catalogdb.Position{Lat: lat, Lng: lng}
}

// Sellers around (52.0, 19.0): nearFarm is ~5 km north, farFarm ~15 km north.
var testSellers = map[string]catalogdb.Seller{
	"seller-near": {
		ID:          "seller-near",
		DisplayName: "Anna Nowak",
		FarmName:    "Near Farm",
		Verified:    true,
		Position:    position(52.045, 19.0),
	},
	"seller-far": {
		ID:          "seller-far",
		DisplayName: "Jan Kowalski",
		FarmName:    "Far Farm",
		Verified:    false,
		Position:    position(52.135, 19.0),
	},
	"seller-nowhere": {
		ID:          "seller-nowhere",
		DisplayName: "Ghost Farm",
		FarmName:    "Ghost Farm",
		Verified:    true,
		Position:    position(999.0, 19.0),
	},
}

func testProduct(id, sellerID string) catalogdb.Product {
	return catalogdb.Product{
		ID:       id,
		Name:     "Product " + id,
		Category: "vegetables",
		SellerID: sellerID,
		Stock:    10,
		Status:   catalogdb.StatusActive,
	}
}
