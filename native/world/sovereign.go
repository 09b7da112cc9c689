package world

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/fault"
)

// SovereignAuth is proof that a caller was checked against the current
// Sovereign key. It carries no data — its only purpose is to make
// privileged calls impossible to reach without going through Authorize.
type SovereignAuth struct{}

// Sovereign holds the single address permitted to update World-level
// configuration and perform key rotation.
type Sovereign struct {
	Key crypto.Address
}

// NewSovereign installs key as the initial sovereign.
func NewSovereign(key crypto.Address) Sovereign {
	return Sovereign{Key: key}
}

// Authorize checks caller against the sovereign key, returning a
// SovereignAuth token usable by the privileged operations it gates.
func (s Sovereign) Authorize(caller crypto.Address) (SovereignAuth, error) {
	if caller != s.Key {
		return SovereignAuth{}, fault.New(fault.Unauthorized, "sovereign key does not match caller")
	}
	return SovereignAuth{}, nil
}

// Rotate replaces the sovereign key, gated the same way as every other
// sovereign-only mutation.
func (s *Sovereign) Rotate(_ SovereignAuth, newKey crypto.Address) {
	s.Key = newKey
}
