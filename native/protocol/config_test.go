package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenant-finance/covenant/native/auction"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/flashmint"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/offering"
	"github.com/covenant-finance/covenant/native/oracle"
	"github.com/covenant-finance/covenant/native/protocol"
	"github.com/covenant-finance/covenant/native/schedule"
	"github.com/covenant-finance/covenant/native/vault"
)

func mustConfig(t *testing.T, maxLTV decimal.Decimal) protocol.Config {
	t.Helper()
	sched, err := schedule.New(decimal.Zero(), decimal.FromUint64(1), decimal.FromUint64(1))
	require.NoError(t, err)
	bookCfg := book.Config{InterestRate: decimal.Zero(), RewardSchedule: sched}
	half, err := decimal.FromUint64(1).DivUint64(2)
	require.NoError(t, err)
	auctionCfg, err := auction.NewConfig(decimal.FromUint64(2), half, decimal.Zero())
	require.NoError(t, err)
	cfg, err := protocol.NewConfig(
		maxLTV,
		interest.Zero(),
		oracle.Zero(),
		auctionCfg,
		bookCfg,
		flashmint.Config{Fee: decimal.Zero(), Limit: decimal.FromUint64(1000)},
		offering.Config{
			SurplusLimit:     decimal.FromUint64(1000),
			DeficitLimit:     decimal.FromUint64(1000),
			DvdOfferingSize:  decimal.FromUint64(100),
			DoveOfferingSize: decimal.FromUint64(100),
		},
		bookCfg,
		vault.Config{
			LiquidationPenaltyRate:   decimal.Zero(),
			LiquidationRewardCap:     decimal.Zero(),
			LiquidationRewardRate:    decimal.Zero(),
			AuctionFailureRewardCap:  decimal.Zero(),
			AuctionFailureRewardRate: decimal.Zero(),
		},
	)
	require.NoError(t, err)
	return cfg
}

func TestNewConfigRejectsOutOfRangeMaxLTV(t *testing.T) {
	half, err := decimal.FromUint64(1).DivUint64(2)
	require.NoError(t, err)
	_ = mustConfig(t, half)

	one := decimal.One()
	sched, err := schedule.New(decimal.Zero(), decimal.FromUint64(1), decimal.FromUint64(1))
	require.NoError(t, err)
	bookCfg := book.Config{InterestRate: decimal.Zero(), RewardSchedule: sched}
	half2, err := decimal.FromUint64(1).DivUint64(2)
	require.NoError(t, err)
	auctionCfg, err := auction.NewConfig(decimal.FromUint64(2), half2, decimal.Zero())
	require.NoError(t, err)
	_, err = protocol.NewConfig(
		one, interest.Zero(), oracle.Zero(), auctionCfg, bookCfg,
		flashmint.Config{Fee: decimal.Zero(), Limit: decimal.FromUint64(1)},
		offering.Config{SurplusLimit: decimal.FromUint64(1), DeficitLimit: decimal.FromUint64(1), DvdOfferingSize: decimal.FromUint64(1), DoveOfferingSize: decimal.FromUint64(1)},
		bookCfg,
		vault.Config{},
	)
	require.Error(t, err)
}
