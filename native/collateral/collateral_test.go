package collateral_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/collateral"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/token"
)

func mustAddress(t *testing.T, b byte) crypto.Address {
	t.Helper()
	bytes := make([]byte, 20)
	bytes[0] = b
	addr, err := crypto.NewAddress(crypto.CovenantPrefix, bytes)
	require.NoError(t, err)
	return addr
}

func TestReceiveEnforcesMaxDeposit(t *testing.T) {
	mintKey := mustAddress(t, 1)
	mint := token.NewMint(mintKey, 6)
	c := collateral.New(mint)
	c.UpdateMaxDeposit(decimal.FromUint64(100))

	balances := token.NewBalances()
	authority := token.NewAuthority()
	user := mustAddress(t, 2)
	require.NoError(t, mint.MintTo(authority, &balances, user, decimal.FromUint64(1000)))

	require.NoError(t, c.Receive(&balances, user, decimal.FromUint64(100)))
	require.Equal(t, 0, c.Deposited.Cmp(decimal.FromUint64(100)))

	err := c.Receive(&balances, user, decimal.FromUint64(1))
	require.Error(t, err)
}

func TestSendRequiresAuthorityAndReducesDeposited(t *testing.T) {
	mintKey := mustAddress(t, 3)
	mint := token.NewMint(mintKey, 6)
	c := collateral.New(mint)
	c.UpdateMaxDeposit(decimal.FromUint64(100))

	balances := token.NewBalances()
	authority := token.NewAuthority()
	user := mustAddress(t, 4)
	require.NoError(t, mint.MintTo(authority, &balances, user, decimal.FromUint64(100)))
	require.NoError(t, c.Receive(&balances, user, decimal.FromUint64(60)))

	err := c.Send(token.Authority{}, &balances, user, decimal.FromUint64(10))
	require.Error(t, err)

	require.NoError(t, c.Send(authority, &balances, user, decimal.FromUint64(10)))
	require.Equal(t, 0, c.Deposited.Cmp(decimal.FromUint64(50)))
}
