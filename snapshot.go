package lonja

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// SnapshotStore persists the flattened stock availability list. The
// stock page treats this as its only database: one slot, overwritten
// wholesale on every save, no merge and no history. It sits behind an
// interface so a real store can replace it without touching the
// grouper's reducer logic.
type SnapshotStore interface {
	Save(entries []StockSnapshotEntry) error
	Load() ([]StockSnapshotEntry, bool, error)
	Close() error
}

var (
	snapshotBucket = []byte("stock")
	snapshotKey    = []byte("available")
)

// BoltSnapshotStore keeps the snapshot in a single bbolt bucket under a
// single key.
type BoltSnapshotStore struct {
	db *bolt.DB
}

// OpenSnapshotStore opens (or creates) the bbolt file at path.
func OpenSnapshotStore(path string) (*BoltSnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	return &BoltSnapshotStore{db: db}, nil
}

// Close closes the underlying bbolt file.
func (s *BoltSnapshotStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the persisted snapshot with entries.
func (s *BoltSnapshotStore) Save(entries []StockSnapshotEntry) error {
	if entries == nil {
		entries = []StockSnapshotEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(snapshotBucket)
		if err != nil {
			return err
		}
		return b.Put(snapshotKey, data)
	})
}

// Load returns the last saved snapshot. ok is false when nothing has
// been saved yet.
func (s *BoltSnapshotStore) Load() ([]StockSnapshotEntry, bool, error) {
	var entries []StockSnapshotEntry
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket)
		if b == nil {
			return nil
		}
		v := b.Get(snapshotKey)
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &entries)
	})
	if err != nil {
		return nil, false, err
	}
	return entries, found, nil
}
