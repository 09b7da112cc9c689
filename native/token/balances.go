package token

import (
	"bytes"
	"encoding/gob"

	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
)

// Balances is a mint's user-account ledger, keyed by owner address. One
// Balances exists per Mint.
type Balances struct {
	byOwner map[string]decimal.Decimal
}

// NewBalances creates an empty ledger.
func NewBalances() Balances {
	return Balances{byOwner: make(map[string]decimal.Decimal)}
}

// Get returns the owner's balance, zero if never credited.
func (b Balances) Get(owner crypto.Address) decimal.Decimal {
	if v, ok := b.byOwner[owner.String()]; ok {
		return v
	}
	return decimal.Zero()
}

func (b *Balances) credit(owner crypto.Address, amount decimal.Decimal) error {
	if b.byOwner == nil {
		b.byOwner = make(map[string]decimal.Decimal)
	}
	sum, err := b.Get(owner).Add(amount)
	if err != nil {
		return err
	}
	b.byOwner[owner.String()] = sum
	return nil
}

func (b *Balances) debit(owner crypto.Address, amount decimal.Decimal) error {
	current := b.Get(owner)
	if current.LessThan(amount) {
		return fault.New(fault.InsufficientBalance, "account %s has insufficient balance", owner)
	}
	remainder, err := current.Sub(amount)
	if err != nil {
		return err
	}
	b.byOwner[owner.String()] = remainder
	return nil
}

// Transfer moves amount from one owner's balance to another's, both within
// this same mint's ledger.
func (b *Balances) Transfer(from, to crypto.Address, amount decimal.Decimal) error {
	if err := b.debit(from, amount); err != nil {
		return err
	}
	return b.credit(to, amount)
}

// MarshalBinary gob-encodes the underlying ledger, letting Balances be
// stored directly by gob-based persistence layers despite its unexported
// field.
func (b Balances) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b.byOwner); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the format written by MarshalBinary.
func (b *Balances) UnmarshalBinary(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&b.byOwner)
}
