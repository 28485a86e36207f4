package catalogdb

import "context"

type DB interface {
	ProductStore
	SellerStore
	ReviewStore
	Close() error
}

// ProductStore is the predicate-query surface over the product catalog.
// FindCandidates applies only the predicates expressible at the store level
// and caps the result; geographic and reputation pruning happen client-side.
type ProductStore interface {
	PutProducts(ctx context.Context, products []Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	FindCandidates(ctx context.Context, filter CandidateFilter, limit int) ([]Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type SellerStore interface {
	PutSellers(ctx context.Context, sellers []Seller) error
	GetSeller(ctx context.Context, id string) (*Seller, error)
	ListSellers(ctx context.Context) ([]Seller, error)
}

type ReviewStore interface {
	PutReviews(ctx context.Context, reviews []Review) error
	ListPublishedReviews(ctx context.Context, sellerID string) ([]Review, error)
}
