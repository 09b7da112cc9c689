package rpc

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/covenant-finance/covenant/native/common"
)

// QuotaStore is a goleveldb-backed common.Store, giving the quota
// counters native/common defines a durable home independent of the
// request process's lifetime.
type QuotaStore struct {
	db *leveldb.DB
}

// NewQuotaStore opens (creating if absent) a goleveldb database rooted at
// dir for quota counters.
func NewQuotaStore(dir string) (*QuotaStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &QuotaStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *QuotaStore) Close() error { return s.db.Close() }

func quotaKey(module string, epoch uint64, addr []byte) []byte {
	key := []byte(fmt.Sprintf("quota/%s/%d/", module, epoch))
	return append(key, addr...)
}

// Load implements common.Store.
func (s *QuotaStore) Load(module string, epoch uint64, addr []byte) (common.QuotaNow, bool, error) {
	data, err := s.db.Get(quotaKey(module, epoch, addr), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return common.QuotaNow{}, false, nil
		}
		return common.QuotaNow{}, false, err
	}
	var now common.QuotaNow
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&now); err != nil {
		return common.QuotaNow{}, false, err
	}
	return now, true, nil
}

// Save implements common.Store.
func (s *QuotaStore) Save(module string, epoch uint64, addr []byte, counters common.QuotaNow) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(counters); err != nil {
		return err
	}
	return s.db.Put(quotaKey(module, epoch, addr), buf.Bytes(), nil)
}
