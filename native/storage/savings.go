package storage

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/savings"
)

// SaveSavings persists a single owner's Savings account.
func (s *Store) SaveSavings(owner crypto.Address, sv *savings.Savings) error {
	return s.put(deriveKey(savingsPrefix, owner), sv)
}

// LoadSavings loads a previously saved Savings account.
func (s *Store) LoadSavings(owner crypto.Address) (*savings.Savings, error) {
	var sv savings.Savings
	if err := s.get(deriveKey(savingsPrefix, owner), &sv); err != nil {
		return nil, err
	}
	return &sv, nil
}
