package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/collateral"
	"github.com/covenant-finance/covenant/native/protocol"
	"github.com/covenant-finance/covenant/native/savings"
	"github.com/covenant-finance/covenant/native/schedule"
	"github.com/covenant-finance/covenant/native/stability"
	"github.com/covenant-finance/covenant/native/storage"
	"github.com/covenant-finance/covenant/native/token"
	"github.com/covenant-finance/covenant/native/vault"
)

func mustAddress(t *testing.T, b byte) crypto.Address {
	t.Helper()
	raw := make([]byte, 20)
	raw[0] = b
	addr, err := crypto.NewAddress(crypto.CovenantPrefix, raw)
	require.NoError(t, err)
	return addr
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestWorldRoundTrip(t *testing.T) {
	s := openStore(t)

	_, err := s.LoadWorld()
	require.ErrorIs(t, err, storage.ErrNotFound)

	w := protocol.NewWorld(protocol.InitParams{
		DoveMint:         mustAddress(t, 1),
		DvdMint:          mustAddress(t, 2),
		Sovereign:        mustAddress(t, 3),
		VestingRecipient: mustAddress(t, 4),
		VestingSchedule:  schedule.Schedule{},
		DvdDecimals:      6,
		DoveDecimals:     9,
		Now:              1000,
	})

	require.NoError(t, s.SaveWorld(&w))

	loaded, err := s.LoadWorld()
	require.NoError(t, err)
	require.True(t, loaded.IsInitialized())
	require.Equal(t, w.Dove.Key, loaded.Dove.Key)
	require.Equal(t, w.Sovereign.Key, loaded.Sovereign.Key)
}

func TestVaultRoundTrip(t *testing.T) {
	s := openStore(t)
	owner := mustAddress(t, 10)

	v := vault.New(owner)
	require.NoError(t, s.SaveVault(owner, &v))

	loaded, err := s.LoadVault(owner)
	require.NoError(t, err)
	require.Equal(t, owner, loaded.Owner)

	_, err = s.LoadVault(mustAddress(t, 11))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStabilityPoolRoundTrip(t *testing.T) {
	s := openStore(t)
	mint := mustAddress(t, 20)

	p := stability.New(token.NewMint(mint, 6))
	require.NoError(t, s.SaveStabilityPool(mint, &p))

	loaded, err := s.LoadStabilityPool(mint)
	require.NoError(t, err)
	require.Equal(t, mint, loaded.StableMint.Key)
}

func TestSavingsRoundTrip(t *testing.T) {
	s := openStore(t)
	owner := mustAddress(t, 30)

	sv := savings.New(owner)
	require.NoError(t, s.SaveSavings(owner, &sv))

	loaded, err := s.LoadSavings(owner)
	require.NoError(t, err)
	require.Equal(t, owner, loaded.Owner)
}

func TestCollateralRoundTrip(t *testing.T) {
	s := openStore(t)
	mint := mustAddress(t, 40)

	c := collateral.New(token.NewMint(mint, 8))
	require.NoError(t, s.SaveCollateral(mint, &c))

	loaded, err := s.LoadCollateral(mint)
	require.NoError(t, err)
	require.Equal(t, mint, loaded.Mint.Key)
}
