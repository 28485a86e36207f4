package discovery

import (
	"errors"
	"time"

	"github.com/freshroot/freshroot/db/catalogdb"
)

const (
	SortDistance     = "distance"
	SortPriceLow     = "price_low"
	SortPriceHigh    = "price_high"
	SortRating       = "rating"
	SortNewest       = "newest"
	SortAvailability = "availability"
)

// ErrMissingPosition is returned when a query asks for geography-dependent
// behavior (radius pruning or distance ranking) without a usable position.
var ErrMissingPosition = errors.New("a valid position is required for radius filtering or distance ranking")

// Query is the full set of search parameters. Zero values mean "filter not
// requested" throughout.
type Query struct {
	Text            string
	Position        *catalogdb.Position
	RadiusKm        float64
	Categories      []string
	MinPriceCents   *int64
	MaxPriceCents   *int64
	Availability    string
	Organic         bool
	InSeason        bool
	VerifiedOnly    bool
	Freshness       string
	DeliveryMethods []string
	MinSellerRating float64
	SortBy          string
	PageSize        int
}

// Product is a catalog product augmented with the fields computed during a
// search: distance from the requester and the seller's display data.
type Product struct {
	catalogdb.Product

	DistanceKm     *float64 `json:"distance_km,omitempty"`
	SellerName     string   `json:"seller_name,omitempty"`
	FarmName       string   `json:"farm_name,omitempty"`
	SellerVerified bool     `json:"seller_verified"`
}

type SellerSummary struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	FarmName     string `json:"farm_name"`
	Verified     bool   `json:"verified"`
	ProductCount int    `json:"product_count"`
}

type Result struct {
	Products   []Product       `json:"products"`
	Sellers    []SellerSummary `json:"sellers"`
	HasMore    bool            `json:"has_more"`
	TotalFound int             `json:"total_found"`
	StartedAt  time.Time       `json:"started_at"`
}
