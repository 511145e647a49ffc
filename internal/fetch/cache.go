package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vk/tickgrid/internal/ctxlog"
)

const bucketBodies = "bodies"

// Cache is a Fetcher that stores successful responses in a bbolt database
// keyed by URL, so a resource is downloaded at most once across runs.
type Cache struct {
	db   *bolt.DB
	next Fetcher
}

// OpenCache opens (or creates) the cache database at path in front of next.
func OpenCache(path string, next Fetcher) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening fetch cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketBodies))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing fetch cache: %w", err)
	}
	return &Cache{db: db, next: next}, nil
}

// Fetch returns the cached body for url, fetching and storing it on a miss.
// A failure to write the cache is logged and does not fail the fetch.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	body, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	if body != nil {
		logger.Debug("Fetch cache hit.", "url", url, "bytes", len(body))
		return body, nil
	}

	body, err = c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.put(url, body); err != nil {
		logger.Warn("Failed to store fetched body.", "url", url, slog.Any("error", err))
	}
	return body, nil
}

// Get returns the cached body for url, or nil on a miss.
func (c *Cache) Get(url string) ([]byte, error) {
	var body []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketBodies)).Get([]byte(url)); v != nil {
			// Values are only valid for the life of the transaction.
			body = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading fetch cache: %w", err)
	}
	return body, nil
}

func (c *Cache) put(url string, body []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBodies)).Put([]byte(url), body)
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
