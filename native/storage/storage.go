// Package storage persists the protocol's World and its child objects in an
// embedded goleveldb database, keyed by a type prefix plus an address: the
// owner's for Vault and Savings, the mint's for Stability Pool and
// Collateral.
package storage

import (
	"bytes"
	"encoding/gob"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/covenant-finance/covenant/crypto"
)

// Store wraps a goleveldb database holding the protocol's entire
// persistent state.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) the leveldb database rooted at dir.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

const (
	worldPrefix      = "world"
	vaultPrefix      = "vault"
	stabilityPrefix  = "stability"
	savingsPrefix    = "savings"
	collateralPrefix = "collateral"
)

// deriveKey concatenates a type prefix with zero or more address-keyed
// segments into a single lookup key.
func deriveKey(prefix string, segments ...crypto.Address) []byte {
	key := []byte(prefix)
	for _, seg := range segments {
		key = append(key, 0)
		key = append(key, seg.Bytes()...)
	}
	return key
}

func gobEncode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: record not found")

func (s *Store) get(key []byte, v any) error {
	data, err := s.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return gobDecode(data, v)
}

func (s *Store) put(key []byte, v any) error {
	data, err := gobEncode(v)
	if err != nil {
		return err
	}
	return s.db.Put(key, data, nil)
}
