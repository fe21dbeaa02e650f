package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketKV = []byte("kv")
)

// KVStore implements domain.KeyValueStore using BoltDB.
type KVStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access).
	// In memory-only mode it is the only copy.
	cache map[string]string
}

// NewKVStore opens (or creates) the database at dbPath.
// An empty dbPath gives a memory-only store.
func NewKVStore(dbPath string) (*KVStore, error) {
	if dbPath == "" {
		return NewMemoryStore(), nil
	}

	dbPath = expandHome(dbPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKV)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KVStore{db: db, cache: make(map[string]string)}, nil
}

// NewMemoryStore returns a store that keeps values in memory only.
func NewMemoryStore() *KVStore {
	return &KVStore{cache: make(map[string]string)}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Persistent reports whether values survive Close.
func (s *KVStore) Persistent() bool {
	return s.db != nil
}

func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *KVStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false, nil
	}

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// string() copies; v is only valid inside the transaction
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !found {
		return "", false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value, true, nil
}

func (s *KVStore) Set(key, value string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b, err := tx.CreateBucketIfNotExists(bucketKV)
			if err != nil {
				return err
			}
			return b.Put([]byte(key), []byte(value))
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Clear removes every key, the equivalent of the user wiping local storage.
func (s *KVStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		// Collect first; deleting under a live cursor skips keys
		var keys [][]byte
		if err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
