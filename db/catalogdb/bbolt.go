package catalogdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/freshroot/freshroot/config"
	"github.com/freshroot/freshroot/logger"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketProducts = "products"
	bucketSellers  = "sellers"
	bucketReviews  = "reviews"
)

// reviewKeySeparator joins seller id and review id so that all reviews of one
// seller share a key prefix and can be read with a single cursor seek.
const reviewKeySeparator = "/"

type BoltDB struct {
	store  *bolt.DB
	logger logger.Logger
}

func New(logger logger.Logger, cfg *config.Config) (*BoltDB, error) {
	catalogPath := cfg.GetCatalogDBPath()
	if err := os.MkdirAll(filepath.Dir(catalogPath), 0755); err != nil {
		logger.Error("failed to create catalog database directory", "err", err.Error(), "path", catalogPath)
		return nil, fmt.Errorf("failed to create catalog database directory: %w", err)
	}

	store, err := bolt.Open(catalogPath, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		logger.Error("failed to open catalog database", "err", err.Error(), "path", catalogPath)
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	boltDB := &BoltDB{
		store:  store,
		logger: logger,
	}

	if err := boltDB.initBuckets(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return boltDB, nil
}

func (b *BoltDB) initBuckets() error {
	return b.store.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketProducts, bucketSellers, bucketReviews} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				b.logger.Error("failed to create bucket", "bucket", name, "err", err.Error())
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

func (b *BoltDB) PutProducts(ctx context.Context, products []Product) error {
	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketProducts))
		for _, product := range products {
			if product.ID == "" {
				return &InvalidRecordError{ID: product.ID, Reason: "product id cannot be empty"}
			}
			if product.SellerID == "" {
				return &InvalidRecordError{ID: product.ID, Reason: "product seller id cannot be empty"}
			}
			value, err := json.Marshal(product)
			if err != nil {
				return fmt.Errorf("failed to encode product %s: %w", product.ID, err)
			}
			if err := bucket.Put([]byte(product.ID), value); err != nil {
				b.logger.Error("failed to store product", "id", product.ID, "err", err.Error())
				return fmt.Errorf("failed to store product %s: %w", product.ID, err)
			}
		}
		return nil
	})
}

func (b *BoltDB) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := b.store.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(bucketProducts)).Get([]byte(id))
		if value == nil {
			return &NotFoundError{ID: id}
		}
		return json.Unmarshal(value, &product)
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// FindCandidates scans the product bucket and keeps rows matching the filter,
// up to limit. The scan is deliberately brute force: the candidate pool is
// small after the cap and ordering is the ranker's job, not the store's.
func (b *BoltDB) FindCandidates(ctx context.Context, filter CandidateFilter, limit int) ([]Product, error) {
	candidates := []Product{}
	err := b.store.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketProducts)).Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var product Product
			if err := json.Unmarshal(value, &product); err != nil {
				b.logger.Warn("skipping undecodable product record", "id", string(key), "err", err.Error())
				continue
			}

			if !filter.Matches(product) {
				continue
			}

			candidates = append(candidates, product)
			if limit > 0 && len(candidates) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("candidate scan failed: %w", err)
	}

	return candidates, nil
}

func (b *BoltDB) ListProducts(ctx context.Context) ([]Product, error) {
	products := []Product{}
	err := b.store.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketProducts)).ForEach(func(key, value []byte) error {
			var product Product
			if err := json.Unmarshal(value, &product); err != nil {
				b.logger.Warn("skipping undecodable product record", "id", string(key), "err", err.Error())
				return nil
			}
			products = append(products, product)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("product listing failed: %w", err)
	}

	return products, nil
}

func (b *BoltDB) PutSellers(ctx context.Context, sellers []Seller) error {
	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSellers))
		for _, seller := range sellers {
			if seller.ID == "" {
				return &InvalidRecordError{ID: seller.ID, Reason: "seller id cannot be empty"}
			}
			value, err := json.Marshal(seller)
			if err != nil {
				return fmt.Errorf("failed to encode seller %s: %w", seller.ID, err)
			}
			if err := bucket.Put([]byte(seller.ID), value); err != nil {
				b.logger.Error("failed to store seller", "id", seller.ID, "err", err.Error())
				return fmt.Errorf("failed to store seller %s: %w", seller.ID, err)
			}
		}
		return nil
	})
}

func (b *BoltDB) GetSeller(ctx context.Context, id string) (*Seller, error) {
	var seller Seller
	err := b.store.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(bucketSellers)).Get([]byte(id))
		if value == nil {
			return &NotFoundError{ID: id}
		}
		return json.Unmarshal(value, &seller)
	})
	if err != nil {
		return nil, err
	}

	return &seller, nil
}

func (b *BoltDB) ListSellers(ctx context.Context) ([]Seller, error) {
	sellers := []Seller{}
	err := b.store.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSellers)).ForEach(func(key, value []byte) error {
			var seller Seller
			if err := json.Unmarshal(value, &seller); err != nil {
				b.logger.Warn("skipping undecodable seller record", "id", string(key), "err", err.Error())
				return nil
			}
			sellers = append(sellers, seller)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("seller listing failed: %w", err)
	}

	return sellers, nil
}

func (b *BoltDB) PutReviews(ctx context.Context, reviews []Review) error {
	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketReviews))
		for _, review := range reviews {
			if review.ID == "" || review.SellerID == "" {
				return &InvalidRecordError{ID: review.ID, Reason: "review id and seller id cannot be empty"}
			}
			value, err := json.Marshal(review)
			if err != nil {
				return fmt.Errorf("failed to encode review %s: %w", review.ID, err)
			}
			key := review.SellerID + reviewKeySeparator + review.ID
			if err := bucket.Put([]byte(key), value); err != nil {
				b.logger.Error("failed to store review", "id", review.ID, "err", err.Error())
				return fmt.Errorf("failed to store review %s: %w", review.ID, err)
			}
		}
		return nil
	})
}

func (b *BoltDB) ListPublishedReviews(ctx context.Context, sellerID string) ([]Review, error) {
	reviews := []Review{}
	prefix := []byte(sellerID + reviewKeySeparator)
	err := b.store.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketReviews)).Cursor()
		for key, value := cursor.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, value = cursor.Next() {
			var review Review
			if err := json.Unmarshal(value, &review); err != nil {
				b.logger.Warn("skipping undecodable review record", "id", string(key), "err", err.Error())
				continue
			}
			if review.Status != ReviewStatusPublished {
				continue
			}
			reviews = append(reviews, review)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("review listing failed: %w", err)
	}

	return reviews, nil
}

func (b *BoltDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}
