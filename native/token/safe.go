package token

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
)

// Safe is the protocol-controlled escrow account for one mint: collateral
// deposits, stablecoin deposits, and any other balance the protocol holds
// on behalf of its vaults rather than an individual user. Its receive/send
// asymmetry is deliberate: receiving funds needs only the depositing user's
// authorization, sending funds out needs the protocol's Authority.
type Safe struct {
	Mint    crypto.Address
	Balance decimal.Decimal
}

// NewSafe creates an empty escrow for mint.
func NewSafe(mint crypto.Address) Safe {
	return Safe{Mint: mint, Balance: decimal.Zero()}
}

// Receive pulls amount out of the user's balance in balances and into the
// safe.
func (s *Safe) Receive(balances *Balances, from crypto.Address, amount decimal.Decimal) error {
	if err := balances.debit(from, amount); err != nil {
		return err
	}
	sum, err := s.Balance.Add(amount)
	if err != nil {
		return err
	}
	s.Balance = sum
	return nil
}

// Send pays amount out of the safe to the recipient, requiring Authority.
func (s *Safe) Send(authority Authority, balances *Balances, to crypto.Address, amount decimal.Decimal) error {
	if err := authority.require(); err != nil {
		return err
	}
	if s.Balance.LessThan(amount) {
		return fault.New(fault.InsufficientBalance, "safe for mint %s has insufficient balance", s.Mint)
	}
	remainder, err := s.Balance.Sub(amount)
	if err != nil {
		return err
	}
	if err := balances.credit(to, amount); err != nil {
		return err
	}
	s.Balance = remainder
	return nil
}
