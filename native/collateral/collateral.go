// Package collateral models one accepted deposit asset: its mint, its
// escrow Safe, how much of it is currently deposited across every vault,
// the cap on that total, and the oracle that prices it.
package collateral

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/oracle"
	"github.com/covenant-finance/covenant/native/token"
)

// Collateral tracks one accepted deposit asset across every vault.
// MintDecimals is cached alongside the Mint at creation time, rather than
// read back out of it on every call.
type Collateral struct {
	Mint         token.Mint
	Safe         token.Safe
	MintDecimals uint8
	Deposited    decimal.Decimal
	MaxDeposit   decimal.Decimal
	Oracle       oracle.Oracle
}

// New creates a Collateral entry for mint with zero deposits, zero deposit
// cap, and no configured oracle — callers must call UpdateMaxDeposit and
// SetOracle (both governance-authorized) before it accepts meaningful
// deposits.
func New(mint token.Mint) Collateral {
	return Collateral{
		Mint:         mint,
		Safe:         token.NewSafe(mint.Key),
		MintDecimals: mint.Decimals,
		Deposited:    decimal.Zero(),
		MaxDeposit:   decimal.Zero(),
		Oracle:       oracle.Zero(),
	}
}

// UpdateMaxDeposit is a governance-authorized configuration change.
func (c *Collateral) UpdateMaxDeposit(newMaxDeposit decimal.Decimal) {
	c.MaxDeposit = newMaxDeposit
}

// SetOracle is a governance-authorized configuration change.
func (c *Collateral) SetOracle(o oracle.Oracle) {
	c.Oracle = o
}

// Receive deposits amount of this collateral into the safe on behalf of a
// vault, enforcing the aggregate deposit cap.
func (c *Collateral) Receive(balances *token.Balances, from crypto.Address, amount decimal.Decimal) error {
	newDeposited, err := c.Deposited.Add(amount)
	if err != nil {
		return err
	}
	if newDeposited.GreaterThan(c.MaxDeposit) {
		return fault.New(fault.InvalidArgument, "deposit limit for collateral type reached")
	}
	if err := c.Safe.Receive(balances, from, amount); err != nil {
		return err
	}
	c.Deposited = newDeposited
	return nil
}

// Send pays amount of this collateral out of the safe, requiring Authority.
func (c *Collateral) Send(authority token.Authority, balances *token.Balances, to crypto.Address, amount decimal.Decimal) error {
	if err := c.Safe.Send(authority, balances, to, amount); err != nil {
		return err
	}
	deposited, err := c.Deposited.Sub(amount)
	if err != nil {
		return err
	}
	c.Deposited = deposited
	return nil
}

// GetPrice returns this collateral's current value in D, priced from feed,
// the observation the caller decoded for this collateral. c.Oracle itself is
// not read here.
func (c *Collateral) GetPrice(feed oracle.Feed, now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate) (decimal.Decimal, error) {
	return oracle.QueryDVD(feed, now, price, dvdRate)
}
