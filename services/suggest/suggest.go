package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/db/suggestdb"
	"github.com/freshroot/freshroot/logger"
)

const maxSuggestions = 10

// Catalog represents the catalog reads needed to build the suggestion index.
type Catalog interface {
	ListProducts(ctx context.Context) ([]catalogdb.Product, error)
	ListSellers(ctx context.Context) ([]catalogdb.Seller, error)
}

type Service struct {
	logger  logger.Logger
	index   suggestdb.DB
	catalog Catalog
}

func New(logger logger.Logger, index suggestdb.DB, catalog Catalog) *Service {
	return &Service{
		logger:  logger,
		index:   index,
		catalog: catalog,
	}
}

// Suggest returns at most maxSuggestions autocomplete entries for the given
// partial text.
func (s *Service) Suggest(partialText string) ([]suggestdb.Suggestion, error) {
	suggestions, err := s.index.Suggest(partialText, maxSuggestions)
	if err != nil {
		return nil, fmt.Errorf("could not fetch suggestions: %w", err)
	}

	return suggestions, nil
}

// Rebuild re-derives the suggestion index from the catalog: one entry per
// active product name, one per distinct category, one per farm name.
func (s *Service) Rebuild(ctx context.Context) error {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("could not list products for suggestion rebuild: %w", err)
	}

	sellers, err := s.catalog.ListSellers(ctx)
	if err != nil {
		return fmt.Errorf("could not list sellers for suggestion rebuild: %w", err)
	}

	entries := make([]suggestdb.Entry, 0, len(products)+len(sellers))
	categories := map[string]struct{}{}

	for _, product := range products {
		if product.Status != catalogdb.StatusActive {
			continue
		}
		entries = append(entries, suggestdb.Entry{
			ID:   "product:" + product.ID,
			Text: product.Name,
			Kind: suggestdb.KindProduct,
		})

		category := strings.TrimSpace(product.Category)
		if category == "" {
			continue
		}
		key := strings.ToLower(category)
		if _, ok := categories[key]; ok {
			continue
		}
		categories[key] = struct{}{}
		entries = append(entries, suggestdb.Entry{
			ID:   "category:" + key,
			Text: category,
			Kind: suggestdb.KindCategory,
		})
	}

	for _, seller := range sellers {
		if strings.TrimSpace(seller.FarmName) == "" {
			continue
		}
		entries = append(entries, suggestdb.Entry{
			ID:   "farm:" + seller.ID,
			Text: seller.FarmName,
			Kind: suggestdb.KindFarm,
		})
	}

	if err := s.index.BuildIndex(entries); err != nil {
		return fmt.Errorf("could not rebuild suggestion index: %w", err)
	}

	s.logger.Info("rebuilt suggestion index", "entries", len(entries))

	return nil
}
