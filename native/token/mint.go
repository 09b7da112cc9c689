package token

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/observability"
)

// Mint is one of the protocol's internal fungible assets (D or E). Decimals
// and Supply are tracked directly on the struct rather than recomputed from
// the underlying balances on every call.
type Mint struct {
	Key      crypto.Address
	Decimals uint8
	Supply   decimal.Decimal
}

// NewMint creates a zero-supply mint identified by key.
func NewMint(key crypto.Address, decimals uint8) Mint {
	return Mint{Key: key, Decimals: decimals, Supply: decimal.Zero()}
}

// MintTo credits amount to the recipient's balance in balances and
// increases total supply, requiring the protocol's Authority capability.
func (m *Mint) MintTo(authority Authority, balances *Balances, to crypto.Address, amount decimal.Decimal) error {
	if err := authority.require(); err != nil {
		return err
	}
	supply, err := m.Supply.Add(amount)
	if err != nil {
		return err
	}
	if err := balances.credit(to, amount); err != nil {
		return err
	}
	m.Supply = supply
	observability.Events().RecordTransfer(m.Key.String())
	return nil
}

// Burn debits amount from the owner's balance and decreases total supply.
// Unlike MintTo, burning does not require Authority: any owner may burn
// their own balance without protocol sign-off.
func (m *Mint) Burn(balances *Balances, from crypto.Address, amount decimal.Decimal) error {
	if m.Supply.LessThan(amount) {
		return fault.New(fault.InsufficientBalance, "mint %s supply is less than burn amount", m.Key)
	}
	if err := balances.debit(from, amount); err != nil {
		return err
	}
	supply, err := m.Supply.Sub(amount)
	if err != nil {
		return err
	}
	m.Supply = supply
	observability.Events().RecordTransfer(m.Key.String())
	return nil
}
