// Package token implements the protocol's two internal assets (D, the debt
// token, and E, the reward token) plus the escrow mechanism (Safe) that
// holds user-deposited collateral and stablecoin.
//
// Balances are addressed by crypto.Address rather than by any on-chain
// account format: Authority can mint and move funds out of a Safe,
// ordinary callers can only move funds into a Safe or between their own
// balances.
package token

import "github.com/covenant-finance/covenant/native/fault"

// Authority is the protocol's own minting and escrow-disbursement
// capability: a marker type obtained once from World and threaded through
// every call that needs to move funds the caller doesn't own outright.
type Authority struct {
	initialized bool
}

// NewAuthority constructs the protocol's singleton minting capability.
func NewAuthority() Authority {
	return Authority{initialized: true}
}

func (a Authority) require() error {
	if !a.initialized {
		return fault.New(fault.Uninitialized, "authority is not initialized")
	}
	return nil
}
