// Package savings implements a single saver's deposit against the
// protocol's shared savings Book: D is burned on deposit and minted back
// (from accrued interest) on withdraw, with E rewards claimable separately.
package savings

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/token"
)

// Savings is a single saver's position against the shared savings Book.
type Savings struct {
	Owner crypto.Address
	Page  book.Page
}

// New opens an empty savings account for owner.
func New(owner crypto.Address) Savings {
	return Savings{Owner: owner, Page: book.NewPage()}
}

// Deposit burns amount of D from the owner and adds it to this account's
// savings Page.
func (s *Savings) Deposit(
	amount decimal.Decimal, dvdMint *token.Mint, balances *token.Balances,
	savingsBook *book.Book, savingsCfg book.Config, now uint64,
) error {
	if err := dvdMint.Burn(balances, s.Owner, amount); err != nil {
		return err
	}
	return s.Page.Add(savingsBook, savingsCfg, now, amount)
}

// Withdraw mints up to min(requested amount, current savings total) of D
// back to the owner.
func (s *Savings) Withdraw(
	requestedAmount decimal.Decimal, savingsBook *book.Book, savingsCfg book.Config, dvdMint *token.Mint,
	authority token.Authority, balances *token.Balances, now uint64,
) error {
	total, err := s.Page.GetTotal(savingsBook, savingsCfg, now)
	if err != nil {
		return err
	}
	amount := decimal.Min(requestedAmount, total)
	if amount.IsZero() {
		return fault.New(fault.InsufficientBalance, "insufficient savings")
	}
	if err := s.Page.Subtract(savingsBook, savingsCfg, now, amount); err != nil {
		return err
	}
	return dvdMint.MintTo(authority, balances, s.Owner, amount)
}

// ClaimRewards mints this account's accrued E rewards.
func (s *Savings) ClaimRewards(
	savingsBook *book.Book, savingsCfg book.Config, eMint *token.Mint,
	authority token.Authority, balances *token.Balances, now uint64,
) error {
	amount, err := s.Page.ClaimRewards(savingsBook, savingsCfg, now)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	return eMint.MintTo(authority, balances, s.Owner, amount)
}
