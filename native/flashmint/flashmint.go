// Package flashmint implements an intra-call mint-then-burn pairing: a
// caller receives newly minted D for the duration of a single action and
// must repay it, plus a fee, before that action returns.
//
// A transaction-instruction model enforces this kind of pairing by scanning
// the enclosing transaction for a matching "end" instruction before minting.
// Outside that model there is nothing to scan; Go's call stack already gives
// a stronger guarantee — Execute burns the repayment itself as soon as the
// action returns, so no caller can observe the borrowed D outside the
// single action it was lent for.
package flashmint

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/token"
)

// Config governs flash mint economics: the fee charged on the borrowed
// amount and the per-call ceiling on how much may be borrowed.
type Config struct {
	Fee   decimal.Decimal
	Limit decimal.Decimal
}

// FlashMint tracks at most one in-flight borrow.
type FlashMint struct {
	borrowAmount *decimal.Decimal
}

// New starts with no outstanding borrow.
func New() FlashMint { return FlashMint{} }

// IsActive reports whether a flash mint is currently outstanding.
func (f *FlashMint) IsActive() bool { return f.borrowAmount != nil }

// Execute mints amount of D to borrower, runs action, then burns
// amount*(1+fee) back from borrower — always, even if action returns an
// error, so a failed action still pays the fee on whatever it drew down
// before failing is the caller's responsibility to avoid by returning
// early. Concurrent flash mints are rejected: only one can be in flight at
// a time.
func (f *FlashMint) Execute(
	amount decimal.Decimal, cfg Config,
	authority token.Authority, dvdMint *token.Mint, balances *token.Balances, borrower crypto.Address,
	action func() error,
) error {
	if f.IsActive() {
		return fault.New(fault.InvalidState, "already have active flash mint")
	}
	if amount.IsZero() {
		return fault.New(fault.InvalidArgument, "borrow amount must be positive")
	}
	if amount.GreaterThan(cfg.Limit) {
		return fault.New(fault.InvalidArgument, "flash mint amount exceeds the limit")
	}
	f.borrowAmount = &amount
	defer func() { f.borrowAmount = nil }()

	if err := dvdMint.MintTo(authority, balances, borrower, amount); err != nil {
		return err
	}

	actionErr := action()

	one := decimal.One()
	feeFactor, err := one.Add(cfg.Fee)
	if err != nil {
		return err
	}
	repayAmount, err := amount.Mul(feeFactor)
	if err != nil {
		return err
	}
	if err := dvdMint.Burn(balances, borrower, repayAmount); err != nil {
		if actionErr != nil {
			return actionErr
		}
		return err
	}
	return actionErr
}
