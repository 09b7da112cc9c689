// Package stability implements the protocol's 1:1 stable-swap pool: a
// governance-capped reservoir of stablecoin that backs on-demand minted D,
// absorbing small depegs in D's market price.
package stability

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/token"
	"github.com/covenant-finance/covenant/native/world"
)

// Pool is one mint's stable-swap reservoir: a cap, a running deposit total,
// and the escrow Safe holding the deposited stablecoin.
type Pool struct {
	StableMint token.Mint
	Safe       token.Safe
	MaxDeposit decimal.Decimal
	Deposited  decimal.Decimal
}

// New opens a pool for stableMint with zero deposits and zero cap;
// governance must call UpdateMaxDeposit before it accepts meaningful swaps.
func New(stableMint token.Mint) Pool {
	return Pool{
		StableMint: stableMint,
		Safe:       token.NewSafe(stableMint.Key),
		MaxDeposit: decimal.Zero(),
		Deposited:  decimal.Zero(),
	}
}

// UpdateMaxDeposit is a governance-authorized configuration change: the
// most USD the protocol is willing to lose in the event of a depeg.
func (p *Pool) UpdateMaxDeposit(maxDeposit decimal.Decimal) {
	p.MaxDeposit = maxDeposit
}

// BuyDvd deposits depositAmount of stablecoin and mints the equivalent
// amount of D at the current dvd_price, enforcing the pool's deposit cap.
// A zero deposit is a no-op.
func (p *Pool) BuyDvd(
	depositAmount decimal.Decimal,
	dvdMint *token.Mint, dvdPrice *dvdprice.DvdPrice, dvdRate interest.Rate, stableDvd *world.StableDvd,
	authority token.Authority, balances, dvdBalances *token.Balances, from crypto.Address, now uint64,
) error {
	if depositAmount.IsZero() {
		return nil
	}
	newDeposited, err := p.Deposited.Add(depositAmount)
	if err != nil {
		return err
	}
	if newDeposited.GreaterThan(p.MaxDeposit) {
		return fault.New(fault.InvalidArgument, "mint limit exceeded")
	}
	price, err := dvdPrice.Get(dvdRate, now)
	if err != nil {
		return err
	}
	dvdAmount, err := depositAmount.Div(price)
	if err != nil {
		return err
	}

	if err := p.Safe.Receive(balances, from, depositAmount); err != nil {
		return err
	}
	if err := dvdMint.MintTo(authority, dvdBalances, from, dvdAmount); err != nil {
		return err
	}
	if err := stableDvd.Increase(dvdAmount); err != nil {
		return err
	}
	p.Deposited = newDeposited
	return nil
}

// SellDvd burns dvdAmount of D and pays out the equivalent amount of
// stablecoin at the current dvd_price, requiring the pool to hold at least
// that much deposited stablecoin. A zero amount is a no-op.
func (p *Pool) SellDvd(
	dvdAmount decimal.Decimal,
	dvdMint *token.Mint, dvdPrice *dvdprice.DvdPrice, dvdRate interest.Rate, stableDvd *world.StableDvd,
	authority token.Authority, balances, dvdBalances *token.Balances, from crypto.Address, now uint64,
) error {
	if dvdAmount.IsZero() {
		return nil
	}
	price, err := dvdPrice.Get(dvdRate, now)
	if err != nil {
		return err
	}
	depositAmount, err := dvdAmount.Div(price)
	if err != nil {
		return err
	}
	if depositAmount.GreaterThan(p.Deposited) {
		return fault.New(fault.InsufficientBalance, "not enough stablecoin available to swap to")
	}
	newDeposited, err := p.Deposited.Sub(depositAmount)
	if err != nil {
		return err
	}

	if err := p.Safe.Send(authority, balances, from, depositAmount); err != nil {
		return err
	}
	if err := dvdMint.Burn(dvdBalances, from, dvdAmount); err != nil {
		return err
	}
	if err := stableDvd.Decrease(dvdAmount); err != nil {
		return err
	}
	p.Deposited = newDeposited
	return nil
}
