package interest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/interest"
)

func TestZeroRateAccumulatesToOne(t *testing.T) {
	factor, err := interest.Zero().AccumulationFactor(1_000_000)
	require.NoError(t, err)
	require.Equal(t, 0, factor.Cmp(decimal.One()))
}

func TestZeroElapsedAccumulatesToOne(t *testing.T) {
	r := interest.Rate{RatePerSec: decimal.FromUint64(1)}
	factor, err := r.AccumulationFactor(0)
	require.NoError(t, err)
	require.Equal(t, 0, factor.Cmp(decimal.One()))
}

func TestCompoundsMultiplicatively(t *testing.T) {
	r := interest.Rate{RatePerSec: decimal.FromUint64(1)} // rate of 1.0 doubles the base each second
	factor, err := r.AccumulationFactor(3)
	require.NoError(t, err)
	// (1+1)^3 == 8
	require.Equal(t, 0, factor.Cmp(decimal.FromUint64(8)))
}
