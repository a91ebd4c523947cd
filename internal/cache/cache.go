package cache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// Cache is a TTL'd key/value store for resolved video metadata, backed by
// Badger. Values are gob-encoded.
type Cache struct {
	ttl time.Duration
	db  *badger.DB
}

// badgerLogger adapts slog for Badger's logger interface.
type badgerLogger struct {
	log *slog.Logger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.log.Error(f, "args", v)
}

func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.log.Warn(f, "args", v)
}

func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.log.Info(f, "args", v)
}

func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.log.Debug(f, "args", v)
}

// New opens a metadata cache at path. Entries expire after ttl.
func New(path string, ttl time.Duration) (*Cache, error) {
	log := slog.With("component", "metadata-cache")

	opts := badger.DefaultOptions(path).
		WithLogger(&badgerLogger{log: log}).
		WithValueLogFileSize(1<<26 - 1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	// Run garbage collection
	err = db.RunValueLogGC(0.5)
	if err != nil && err != badger.ErrNoRewrite {
		db.Close()
		return nil, err
	}

	return &Cache{
		db:  db,
		ttl: ttl,
	}, nil
}

// Set stores a value under key with the cache TTL.
func (c *Cache) Set(key string, value any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}

	return c.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), buf.Bytes()).WithTTL(c.ttl)
		return tx.SetEntry(entry)
	})
}

// Get loads the value stored under key into out. Returns false when the
// key is absent or expired.
func (c *Cache) Get(key string, out any) (bool, error) {
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(out)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Close flushes and closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}
