package catalogdb

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	FreshnessHarvestedToday = "harvested_today"
	FreshnessThisWeek       = "this_week"
	FreshnessAlwaysFresh    = "always_fresh"
)

const (
	DeliveryPickup       = "pickup"
	DeliveryHomeDelivery = "home_delivery"
	DeliveryMarket       = "market"
)

const (
	AvailabilityAll      = "all"
	AvailabilityInStock  = "in_stock"
	AvailabilityPreOrder = "pre_order"
)

const (
	ReviewStatusPublished = "published"
	ReviewStatusPending   = "pending"
	ReviewStatusRemoved   = "removed"
)

type Product struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Category        string       `json:"category"`
	PriceCents      int64        `json:"price_cents"`
	Stock           int          `json:"stock"`
	Organic         bool         `json:"organic"`
	ActiveMonths    []time.Month `json:"active_months,omitempty"`
	Freshness       string       `json:"freshness,omitempty"`
	DeliveryMethods []string     `json:"delivery_methods,omitempty"`
	SellerID        string       `json:"seller_id"`
	Rating          float64      `json:"rating"`
	CreatedAt       time.Time    `json:"created_at"`
	Status          string       `json:"status"`
}

// InSeason reports whether the product's declared active months include the
// given month. A product with no declared months has no seasonality data and
// never counts as in season.
func (p Product) InSeason(month time.Month) bool {
	for _, m := range p.ActiveMonths {
		if m == month {
			return true
		}
	}
	return false
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

type Seller struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	FarmName    string    `json:"farm_name"`
	Verified    bool      `json:"verified"`
	Position    *Position `json:"position,omitempty"`
	Address     string    `json:"address,omitempty"`
}

// ValidPosition returns the seller's position, or nil when no position is
// stored or the stored one is out of coordinate range. Malformed coordinates
// are treated the same as missing ones so they can never pass distance
// filtering.
func (s Seller) ValidPosition() *Position {
	if s.Position == nil || !s.Position.Valid() {
		return nil
	}
	return s.Position
}

type Review struct {
	ID       string  `json:"id"`
	SellerID string  `json:"seller_id"`
	Rating   float64 `json:"rating"`
	Status   string  `json:"status"`
}

// CandidateFilter holds the store-level predicates of a search. Zero values
// mean "predicate not requested".
type CandidateFilter struct {
	Categories    []string
	MinPriceCents *int64
	MaxPriceCents *int64
	Organic       bool
	InSeasonMonth *time.Month
	Availability  string
	Freshness     string
}

// Matches evaluates the filter against a single product. Status is checked
// first: inactive products never match, regardless of the other predicates.
func (f CandidateFilter) Matches(p Product) bool {
	if p.Status != StatusActive {
		return false
	}

	if len(f.Categories) > 0 {
		found := false
		for _, category := range f.Categories {
			if p.Category == category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MinPriceCents != nil && p.PriceCents < *f.MinPriceCents {
		return false
	}
	if f.MaxPriceCents != nil && p.PriceCents > *f.MaxPriceCents {
		return false
	}

	if f.Organic && !p.Organic {
		return false
	}

	if f.InSeasonMonth != nil && !p.InSeason(*f.InSeasonMonth) {
		return false
	}

	switch f.Availability {
	case AvailabilityInStock:
		if p.Stock <= 0 {
			return false
		}
	case AvailabilityPreOrder:
		if p.Stock > 0 {
			return false
		}
	}

	if f.Freshness != "" && p.Freshness != f.Freshness {
		return false
	}

	return true
}
