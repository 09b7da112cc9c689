// Package auction implements the Dutch auction used both by a liquidated
// Vault (collateral sold for D) and by a surplus/deficit Offering (D sold
// for E or vice versa): a scale factor that decays geometrically from
// begin_scale toward end_scale, applied to a fixed set of reference market
// prices snapshotted at the moment the auction started.
package auction

import (
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
)

// Config bounds a Dutch auction's decay. begin_scale=1.5, decay_rate=0.9995,
// end_scale=0.15 starts 50% above market, decays 0.05%/sec, hits market
// price at about 810s, and fails at 15% of market price at about 4604s.
type Config struct {
	BeginScale decimal.Decimal
	DecayRate  decimal.Decimal
	EndScale   decimal.Decimal
}

// NewConfig validates governance-supplied auction bounds (spec §6): begin
// must exceed end, decay must be sub-unity, end must be sub-unity.
func NewConfig(beginScale, decayRate, endScale decimal.Decimal) (Config, error) {
	if !beginScale.GreaterThan(endScale) {
		return Config{}, fault.New(fault.InvalidArgument, "begin_scale must be greater than end_scale")
	}
	if !decayRate.LessThan(decimal.One()) {
		return Config{}, fault.New(fault.InvalidArgument, "decay_rate must be less than 1")
	}
	if !endScale.LessThan(decimal.One()) {
		return Config{}, fault.New(fault.InvalidArgument, "end_scale must be less than 1")
	}
	return Config{BeginScale: beginScale, DecayRate: decayRate, EndScale: endScale}, nil
}

// Auction holds N reference market prices, snapshotted at StartingTime, sold
// off at a decaying multiple of those prices. N is the vault's reserve
// capacity (see native/vault) when used for liquidation, or 1 when used by
// an Offering.
type Auction struct {
	MarketPrices []decimal.Decimal
	StartingTime uint64
}

// New snapshots marketPrices into a new Auction starting now.
func New(marketPrices []decimal.Decimal, now uint64) Auction {
	prices := make([]decimal.Decimal, len(marketPrices))
	copy(prices, marketPrices)
	return Auction{MarketPrices: prices, StartingTime: now}
}

func (a Auction) scale(cfg Config, now uint64) (decimal.Decimal, error) {
	elapsed := now - a.StartingTime
	decay, err := cfg.DecayRate.Pow(elapsed)
	if err != nil {
		return decimal.Zero(), err
	}
	return cfg.BeginScale.Mul(decay)
}

// IsOver reports whether the decayed scale has fallen to or below end_scale.
func (a Auction) IsOver(cfg Config, now uint64) (bool, error) {
	scale, err := a.scale(cfg, now)
	if err != nil {
		return false, err
	}
	return !scale.GreaterThan(cfg.EndScale), nil
}

// Price returns the current sale price of reserve index: market_price[index]
// scaled by the decayed factor. Strictly decreasing in time until IsOver.
func (a Auction) Price(cfg Config, now uint64, index int) (decimal.Decimal, error) {
	if index < 0 || index >= len(a.MarketPrices) {
		return decimal.Zero(), fault.New(fault.InvalidArgument, "invalid auction price index %d", index)
	}
	scale, err := a.scale(cfg, now)
	if err != nil {
		return decimal.Zero(), err
	}
	return a.MarketPrices[index].Mul(scale)
}
