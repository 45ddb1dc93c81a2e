package connectivity

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/robert-malhotra/go-resdata/internal/dtype"
)

// PebbleCache is a Cache persisted in a pebble database. Labelings are
// stored as big-endian INTE payloads.
type PebbleCache struct {
	db *pebble.DB
}

// OpenPebbleCache opens or creates a cache database in dir.
func OpenPebbleCache(dir string) (*PebbleCache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", dir, err)
	}
	return &PebbleCache{db: db}, nil
}

func (c *PebbleCache) Get(key string) ([]int32, bool, error) {
	data, closer, err := c.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	if len(data)%4 != 0 {
		return nil, false, fmt.Errorf("cache entry %s has %d bytes", key, len(data))
	}
	// Int32s copies out of the buffer owned by closer.
	return dtype.Int32s(data), true, nil
}

func (c *PebbleCache) Put(key string, ids []int32) error {
	return c.db.Set([]byte(key), dtype.EncodeInt32s(ids), pebble.Sync)
}

// Close closes the database.
func (c *PebbleCache) Close() error {
	return c.db.Close()
}
