package auction_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/auction"
	"github.com/covenant-finance/covenant/native/decimal"
)

func TestNewConfigRejectsInvalidBounds(t *testing.T) {
	half, err := decimal.One().DivUint64(2)
	require.NoError(t, err)

	_, err = auction.NewConfig(half, half, half)
	require.Error(t, err, "begin_scale must exceed end_scale")

	_, err = auction.NewConfig(decimal.FromUint64(2), decimal.One(), half)
	require.Error(t, err, "decay_rate must be < 1")

	_, err = auction.NewConfig(decimal.FromUint64(2), half, decimal.One())
	require.Error(t, err, "end_scale must be < 1")
}

// TestPriceMonotonicallyDecreasing checks that, for fixed market prices and
// config, Price is strictly decreasing in time until scale drops to or below
// end_scale.
func TestPriceMonotonicallyDecreasing(t *testing.T) {
	ninetyNinePct, err := decimal.FromUint64(9995).DivUint64(10000)
	require.NoError(t, err)
	fifteenPct, err := decimal.FromUint64(15).DivUint64(100)
	require.NoError(t, err)
	cfg, err := auction.NewConfig(decimal.FromUint64(2), ninetyNinePct, fifteenPct)
	require.NoError(t, err)

	a := auction.New([]decimal.Decimal{decimal.FromUint64(100)}, 0)

	prev, err := a.Price(cfg, 0, 0)
	require.NoError(t, err)
	for now := uint64(1); now < 2000; now += 50 {
		over, err := a.IsOver(cfg, now)
		require.NoError(t, err)
		if over {
			break
		}
		price, err := a.Price(cfg, now, 0)
		require.NoError(t, err)
		require.True(t, price.LessThan(prev), "price did not decrease at t=%d", now)
		prev = price
	}
}

func TestIsOverAtEndScale(t *testing.T) {
	half, err := decimal.One().DivUint64(2)
	require.NoError(t, err)
	tenPct, err := decimal.FromUint64(1).DivUint64(10)
	require.NoError(t, err)
	cfg, err := auction.NewConfig(decimal.One(), half, tenPct)
	require.NoError(t, err)

	a := auction.New([]decimal.Decimal{decimal.FromUint64(10)}, 0)
	over, err := a.IsOver(cfg, 0)
	require.NoError(t, err)
	require.False(t, over)

	over, err = a.IsOver(cfg, 4)
	require.NoError(t, err)
	require.True(t, over)
}
