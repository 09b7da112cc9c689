// Package vault implements a borrower's collateral-backed debt position:
// its reserves (one balance per accepted collateral type), its debt Page
// against the protocol's shared debt Book, and its liquidation Auction.
package vault

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/collateral"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/oracle"
	"github.com/covenant-finance/covenant/native/token"
)

// MaxReserves bounds how many distinct collateral types a single vault may
// hold at once.
const MaxReserves = 6

// Reserve is one collateral balance held by a vault.
type Reserve struct {
	Mint    crypto.Address
	Balance decimal.Decimal
}

// NewReserve opens a zero-balance reserve for c.
func NewReserve(c *collateral.Collateral) Reserve {
	return Reserve{Mint: c.Mint.Key, Balance: decimal.Zero()}
}

func (r *Reserve) requireMint(c *collateral.Collateral) error {
	if r.Mint != c.Mint.Key {
		return fault.New(fault.InvalidArgument, "reserve mint does not match collateral mint")
	}
	return nil
}

// Deposit moves amount of c's underlying asset from the owner's balance
// into c's safe and credits this reserve.
func (r *Reserve) Deposit(balances *token.Balances, c *collateral.Collateral, from crypto.Address, amount decimal.Decimal) error {
	if err := r.requireMint(c); err != nil {
		return err
	}
	if err := c.Receive(balances, from, amount); err != nil {
		return err
	}
	sum, err := r.Balance.Add(amount)
	if err != nil {
		return err
	}
	r.Balance = sum
	return nil
}

// Withdraw pays amount of c's underlying asset out of c's safe to to,
// debiting this reserve.
func (r *Reserve) Withdraw(authority token.Authority, balances *token.Balances, c *collateral.Collateral, to crypto.Address, amount decimal.Decimal) error {
	if err := r.requireMint(c); err != nil {
		return err
	}
	if amount.GreaterThan(r.Balance) {
		return fault.New(fault.InsufficientBalance, "withdraw amount exceeds reserve balance")
	}
	if err := c.Send(authority, balances, to, amount); err != nil {
		return err
	}
	remainder, err := r.Balance.Sub(amount)
	if err != nil {
		return err
	}
	r.Balance = remainder
	return nil
}

// GetValue returns this reserve's current value in D: the collateral's
// price times the reserve balance.
func (r *Reserve) GetValue(c *collateral.Collateral, feed oracle.Feed, now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate) (decimal.Decimal, error) {
	if err := r.requireMint(c); err != nil {
		return decimal.Zero(), err
	}
	unitPrice, err := c.GetPrice(feed, now, price, dvdRate)
	if err != nil {
		return decimal.Zero(), err
	}
	return unitPrice.Mul(r.Balance)
}
