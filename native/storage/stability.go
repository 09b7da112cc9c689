package storage

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/stability"
)

// SaveStabilityPool persists a stability Pool keyed by its stablecoin mint.
func (s *Store) SaveStabilityPool(mint crypto.Address, p *stability.Pool) error {
	return s.put(deriveKey(stabilityPrefix, mint), p)
}

// LoadStabilityPool loads a previously saved stability Pool.
func (s *Store) LoadStabilityPool(mint crypto.Address) (*stability.Pool, error) {
	var p stability.Pool
	if err := s.get(deriveKey(stabilityPrefix, mint), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
