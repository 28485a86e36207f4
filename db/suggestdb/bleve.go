package suggestdb

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/freshroot/freshroot/config"
	"github.com/freshroot/freshroot/logger"
)

const indexingBatchSize = 100

const (
	indexFieldText = "text"
	indexFieldKind = "kind"
)

type BleveDB struct {
	indexPath string
	logger    logger.Logger
	index     bleve.Index
}

func New(logger logger.Logger, cfg *config.Config) (*BleveDB, error) {
	mapping := createIndexMapping()
	indexPath := filepath.Join(cfg.GetStoragePath(), cfg.GetSuggestIndexPath())
	index, err := bleve.New(indexPath, mapping)
	if err != nil {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Error("could not open suggestion index", "err", err.Error())
			return nil, err
		}
	}
	return &BleveDB{indexPath: indexPath, logger: logger, index: index}, nil
}

func createIndexMapping() mapping.IndexMapping {

	indexMapping := bleve.NewIndexMapping()
	entryMapping := bleve.NewDocumentMapping()

	// Text field - analyzed for partial matching, stored for display
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	entryMapping.AddFieldMappingsAt(indexFieldText, textFieldMapping)

	// Kind field - not analyzed (exact value)
	kindFieldMapping := bleve.NewTextFieldMapping()
	kindFieldMapping.Analyzer = keyword.Name
	entryMapping.AddFieldMappingsAt(indexFieldKind, kindFieldMapping)

	indexMapping.AddDocumentMapping("_default", entryMapping)

	return indexMapping
}

// BuildIndex replaces the entries currently indexed under the given ids.
// Rebuilds go through here wholesale after a catalog change.
func (b *BleveDB) BuildIndex(entries []Entry) error {

	batch := b.index.NewBatch()

	for i, entry := range entries {

		err := batch.Index(entry.ID, entry)
		if err != nil {
			b.logger.Error("could not index suggestion entry", "err", err.Error())
			return err
		}

		// Execute batch when it reaches the batch size
		if (i+1)%indexingBatchSize == 0 {
			err = b.index.Batch(batch)
			if err != nil {
				return err
			}
			batch = b.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := b.index.Batch(batch); err != nil {
			b.logger.Error("could not index suggestion entry", "err", err.Error())
			return err
		}
	}

	return nil
}

func (b *BleveDB) Suggest(partialText string, limit int) ([]Suggestion, error) {

	suggestQuery := b.buildSuggestQuery(partialText)

	searchRequest := bleve.NewSearchRequestOptions(suggestQuery, limit, 0, false)
	searchRequest.Fields = []string{indexFieldText, indexFieldKind}

	searchResult, err := b.index.Search(searchRequest)
	if err != nil {
		b.logger.Error("suggestion lookup failed", "err", err.Error())
		return nil, fmt.Errorf("suggestion lookup failed: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(searchResult.Hits))
	seen := map[string]struct{}{}
	for _, hit := range searchResult.Hits {
		suggestion := Suggestion{}
		if text, ok := hit.Fields[indexFieldText].(string); ok {
			suggestion.Text = text
		}
		if kind, ok := hit.Fields[indexFieldKind].(string); ok {
			suggestion.Kind = kind
		}
		if suggestion.Text == "" {
			continue
		}

		// The same text can be indexed under several ids (one per product);
		// deduplicate on text+kind so the caller sees each suggestion once.
		key := suggestion.Kind + ":" + strings.ToLower(suggestion.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func (b *BleveDB) buildSuggestQuery(partialText string) query.Query {

	const (
		boostForPrefixMatch = 3.0
		boostForTermMatch   = 1.0
	)

	partialText = strings.ToLower(strings.TrimSpace(partialText))

	if partialText == "" {
		return bleve.NewMatchNoneQuery()
	}

	disjunctQuery := bleve.NewDisjunctionQuery()

	prefixQuery := bleve.NewPrefixQuery(partialText)
	prefixQuery.SetField(indexFieldText)
	prefixQuery.SetBoost(boostForPrefixMatch)
	disjunctQuery.AddQuery(prefixQuery)

	matchQuery := bleve.NewMatchQuery(partialText)
	matchQuery.SetField(indexFieldText)
	matchQuery.SetBoost(boostForTermMatch)
	disjunctQuery.AddQuery(matchQuery)

	return disjunctQuery
}

func (b *BleveDB) GetEntryCount() (uint64, error) {
	return b.index.DocCount()
}

func (b *BleveDB) Close() error {

	if b.index != nil {
		if err := b.index.Close(); err != nil {
			b.logger.Error("could not close suggestion index", "err", err.Error())
			return err
		}
	}

	return nil
}
