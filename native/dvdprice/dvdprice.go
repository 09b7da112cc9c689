// Package dvdprice tracks the lazily-accrued value of the protocol's debt
// token D relative to an abstract unit, growing under a single continuous
// InterestRate the same way a Book's multiplier grows under its own rate.
package dvdprice

import (
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/interest"
)

// DvdPrice is the current accrued value of D.
type DvdPrice struct {
	Price       decimal.Decimal
	LastUpdated uint64
}

// New starts DvdPrice at 1.0 as of now.
func New(now uint64) DvdPrice {
	return DvdPrice{Price: decimal.One(), LastUpdated: now}
}

// Get accrues the price to now under rate and returns it.
func (p *DvdPrice) Get(rate interest.Rate, now uint64) (decimal.Decimal, error) {
	secsElapsed := now - p.LastUpdated
	if secsElapsed == 0 {
		return p.Price, nil
	}
	factor, err := rate.AccumulationFactor(secsElapsed)
	if err != nil {
		return decimal.Zero(), err
	}
	price, err := p.Price.Mul(factor)
	if err != nil {
		return decimal.Zero(), err
	}
	p.Price = price
	p.LastUpdated = now
	return p.Price, nil
}
