package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/protocol"
	"github.com/covenant-finance/covenant/native/schedule"
)

func mustAddress(t *testing.T, b byte) crypto.Address {
	t.Helper()
	bytes := make([]byte, 20)
	bytes[0] = b
	addr, err := crypto.NewAddress(crypto.CovenantPrefix, bytes)
	require.NoError(t, err)
	return addr
}

func TestNewWorldIsInitialized(t *testing.T) {
	sched, err := schedule.New(decimal.FromUint64(10), decimal.FromUint64(1), decimal.FromUint64(1))
	require.NoError(t, err)
	sovereign := mustAddress(t, 1)

	w := protocol.NewWorld(protocol.InitParams{
		DoveMint:         mustAddress(t, 2),
		DvdMint:          mustAddress(t, 3),
		Sovereign:        sovereign,
		VestingRecipient: mustAddress(t, 4),
		VestingSchedule:  sched,
		DvdDecimals:      18,
		DoveDecimals:     18,
		Now:              0,
	})

	require.True(t, w.IsInitialized())
	require.Equal(t, sovereign, w.Sovereign.Key)
}

func TestRotateSovereignRequiresCurrentSovereign(t *testing.T) {
	sched, err := schedule.New(decimal.FromUint64(10), decimal.FromUint64(1), decimal.FromUint64(1))
	require.NoError(t, err)
	sovereign := mustAddress(t, 5)
	newSovereign := mustAddress(t, 6)
	other := mustAddress(t, 7)

	w := protocol.NewWorld(protocol.InitParams{
		DoveMint:         mustAddress(t, 8),
		DvdMint:          mustAddress(t, 9),
		Sovereign:        sovereign,
		VestingRecipient: mustAddress(t, 10),
		VestingSchedule:  sched,
		DvdDecimals:      18,
		DoveDecimals:     18,
		Now:              0,
	})

	require.Error(t, w.RotateSovereign(other, newSovereign))
	require.NoError(t, w.RotateSovereign(sovereign, newSovereign))
	require.Equal(t, newSovereign, w.Sovereign.Key)
}
