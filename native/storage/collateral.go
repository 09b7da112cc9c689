package storage

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/collateral"
)

// SaveCollateral persists a Collateral entry keyed by its mint.
func (s *Store) SaveCollateral(mint crypto.Address, c *collateral.Collateral) error {
	return s.put(deriveKey(collateralPrefix, mint), c)
}

// LoadCollateral loads a previously saved Collateral entry.
func (s *Store) LoadCollateral(mint crypto.Address) (*collateral.Collateral, error) {
	var c collateral.Collateral
	if err := s.get(deriveKey(collateralPrefix, mint), &c); err != nil {
		return nil, err
	}
	return &c, nil
}
