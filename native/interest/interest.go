// Package interest implements a continuously-compounding per-second
// interest rate, used by Book to grow principal and by DvdPrice to grow the
// debt token's accrued value.
package interest

import "github.com/covenant-finance/covenant/native/decimal"

// Rate is a per-second continuous-compound interest rate.
type Rate struct {
	RatePerSec decimal.Decimal
}

// Zero is the zero rate: its accumulation factor is always One.
func Zero() Rate { return Rate{RatePerSec: decimal.Zero()} }

// AccumulationFactor returns (1 + RatePerSec)^secs, the multiplicative
// growth factor applied to a principal held for secs seconds.
func (r Rate) AccumulationFactor(secs uint64) (decimal.Decimal, error) {
	if r.RatePerSec.IsZero() || secs == 0 {
		return decimal.One(), nil
	}
	base, err := decimal.One().Add(r.RatePerSec)
	if err != nil {
		return decimal.Zero(), err
	}
	return base.Pow(secs)
}
