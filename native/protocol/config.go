// Package protocol assembles the individually testable native packages
// (token, vault, stability, offering, flashmint, savings, vesting, ...)
// into the single World aggregate a deployment actually runs against.
package protocol

import (
	"github.com/covenant-finance/covenant/native/auction"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/flashmint"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/offering"
	"github.com/covenant-finance/covenant/native/oracle"
	"github.com/covenant-finance/covenant/native/vault"
	"github.com/covenant-finance/covenant/native/world"
)

// Config bundles every economic parameter the protocol's operations read.
type Config struct {
	MaxLTV          decimal.Decimal
	DvdInterestRate interest.Rate
	DoveOracle      oracle.Oracle
	AuctionConfig   auction.Config
	DebtConfig      book.Config
	FlashMintConfig flashmint.Config
	OfferingConfig  offering.Config
	SavingsConfig   book.Config
	VaultConfig     vault.Config
}

// NewConfig validates maxLTV (must lie strictly between 0 and 1, mirroring
// Config::new's maxLtv bound) and assembles a Config.
func NewConfig(
	maxLTV decimal.Decimal, dvdInterestRate interest.Rate, doveOracle oracle.Oracle,
	auctionConfig auction.Config, debtConfig book.Config, flashMintConfig flashmint.Config,
	offeringConfig offering.Config, savingsConfig book.Config, vaultConfig vault.Config,
) (Config, error) {
	if !maxLTV.GreaterThan(decimal.Zero()) || !maxLTV.LessThan(decimal.One()) {
		return Config{}, fault.New(fault.InvalidArgument, "max_ltv must be between 0 and 1")
	}
	return Config{
		MaxLTV:          maxLTV,
		DvdInterestRate: dvdInterestRate,
		DoveOracle:      doveOracle,
		AuctionConfig:   auctionConfig,
		DebtConfig:      debtConfig,
		FlashMintConfig: flashMintConfig,
		OfferingConfig:  offeringConfig,
		SavingsConfig:   savingsConfig,
		VaultConfig:     vaultConfig,
	}, nil
}

// Update overwrites the entire configuration, gated on sovereign
// authorization.
func (c *Config) Update(_ world.SovereignAuth, newConfig Config) {
	*c = newConfig
}
