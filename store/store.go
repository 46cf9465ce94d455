// Package store persists transposition-table snapshots in BadgerDB so a
// restarted service keeps its accumulated search knowledge.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/TheKrainBow/gomoku-engine/engine"
)

const keySnapshot = "tt_snapshot"

type snapshot struct {
	Entries []engine.TTSnapshotEntry `json:"entries"`
}

// TTStore wraps a BadgerDB instance holding one snapshot.
type TTStore struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir.
func Open(dir string) (*TTStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open tt store: %w", err)
	}
	return &TTStore{db: db}, nil
}

func (s *TTStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the stored snapshot.
func (s *TTStore) Save(entries []engine.TTSnapshotEntry) error {
	data, err := json.Marshal(snapshot{Entries: entries})
	if err != nil {
		return fmt.Errorf("encode tt snapshot: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySnapshot), data)
	})
}

// Load returns the stored snapshot; a missing snapshot yields an empty slice.
func (s *TTStore) Load() ([]engine.TTSnapshotEntry, error) {
	var snap snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySnapshot))
		if err == badger.ErrKeyNotFound {
			return nil // Nothing persisted yet
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load tt snapshot: %w", err)
	}
	return snap.Entries, nil
}
