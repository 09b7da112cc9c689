package storage

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/vault"
)

// SaveVault persists a single owner's Vault.
func (s *Store) SaveVault(owner crypto.Address, v *vault.Vault) error {
	return s.put(deriveKey(vaultPrefix, owner), v)
}

// LoadVault loads a previously saved Vault.
func (s *Store) LoadVault(owner crypto.Address) (*vault.Vault, error) {
	var v vault.Vault
	if err := s.get(deriveKey(vaultPrefix, owner), &v); err != nil {
		return nil, err
	}
	return &v, nil
}
