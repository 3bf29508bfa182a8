// Package kv provides the small key-value stores bodai persists state in.
// A disk-backed store keeps preferences across runs; an in-memory store
// holds flags that only live as long as the session (the process).
package kv

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store is a string-keyed byte store.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

// BadgerStore is a Store backed by badger.
type BadgerStore struct {
	db *badger.DB
}

// OpenDisk opens (or creates) a persistent store in dir.
func OpenDisk(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory required")
	}
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR).
		WithNumVersionsToKeep(1)
	return open(opts)
}

// OpenMemory opens a store whose contents vanish on Close.
func OpenMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR)
	return open(opts)
}

func open(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get implements Store.
func (s *BadgerStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *BadgerStore) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

type nopStore struct{}

// Nop returns a store that holds nothing and accepts every write.
// It stands in for a store that could not be opened.
func Nop() Store { return nopStore{} }

func (nopStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (nopStore) Set(string, []byte) error         { return nil }
func (nopStore) Close() error                     { return nil }
