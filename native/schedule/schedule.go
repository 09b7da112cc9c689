// Package schedule implements the protocol's piecewise-linear emission
// curve: a warm-up ramp, a flat plateau, then a hard cutoff. It is used both
// directly (token vesting) and as the per-second reward generator inside a
// Book.
package schedule

import (
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
)

// Schedule is a piecewise-linear emission curve over [0, TotalLength] days:
// linearly ramping from 0 to Maximum over [0, WarmupLength), then flat at
// Maximum over [WarmupLength, TotalLength), then zero.
type Schedule struct {
	Maximum      decimal.Decimal
	WarmupLength decimal.Decimal
	TotalLength  decimal.Decimal
}

// New validates and constructs a Schedule. WarmupLength must not exceed
// TotalLength.
func New(maximum, warmupLength, totalLength decimal.Decimal) (Schedule, error) {
	if warmupLength.GreaterThan(totalLength) {
		return Schedule{}, fault.New(fault.InvalidArgument, "warmup_length must not exceed total_length")
	}
	return Schedule{Maximum: maximum, WarmupLength: warmupLength, TotalLength: totalLength}, nil
}

// Integrate computes the area under the emission curve between t1 and t2
// (both expressed in days since the schedule's epoch) in closed form: a
// rectangle after the warm-up, a trapezoid within it, and split at the
// warm-up boundary otherwise. Splitting the interval at any point changes
// the result only by the truncation of the 18-decimal arithmetic, not
// exactly by zero.
func (s Schedule) Integrate(t1, t2 decimal.Decimal) (decimal.Decimal, error) {
	if !t1.LessThan(t2) || !t1.LessThan(s.TotalLength) {
		return decimal.Zero(), nil
	}
	if t2.GreaterThan(s.TotalLength) {
		t2 = s.TotalLength
	}

	switch {
	case !t1.LessThan(s.WarmupLength):
		// Entirely in the flat plateau: maximum * (t2 - t1).
		span, err := t2.Sub(t1)
		if err != nil {
			return decimal.Zero(), err
		}
		return s.Maximum.Mul(span)
	case !t2.GreaterThan(s.WarmupLength):
		// Entirely within warm-up: trapezoid rule on the linear ramp.
		return s.trapezoid(t1, t2)
	default:
		// Straddles the warm-up boundary: split and sum.
		first, err := s.Integrate(t1, s.WarmupLength)
		if err != nil {
			return decimal.Zero(), err
		}
		second, err := s.Integrate(s.WarmupLength, t2)
		if err != nil {
			return decimal.Zero(), err
		}
		return first.Add(second)
	}
}

// trapezoid computes the area of the linear ramp between t1 and t2, both of
// which must lie within [0, WarmupLength].
func (s Schedule) trapezoid(t1, t2 decimal.Decimal) (decimal.Decimal, error) {
	rate1, err := s.rampRate(t1)
	if err != nil {
		return decimal.Zero(), err
	}
	rate2, err := s.rampRate(t2)
	if err != nil {
		return decimal.Zero(), err
	}
	sum, err := rate1.Add(rate2)
	if err != nil {
		return decimal.Zero(), err
	}
	half, err := sum.DivUint64(2)
	if err != nil {
		return decimal.Zero(), err
	}
	span, err := t2.Sub(t1)
	if err != nil {
		return decimal.Zero(), err
	}
	return half.Mul(span)
}

// rampRate returns maximum * (t / warmup_length), the instantaneous emission
// rate at day t while still inside the warm-up.
func (s Schedule) rampRate(t decimal.Decimal) (decimal.Decimal, error) {
	if s.WarmupLength.IsZero() {
		return s.Maximum, nil
	}
	fraction, err := t.Div(s.WarmupLength)
	if err != nil {
		return decimal.Zero(), err
	}
	return s.Maximum.Mul(fraction)
}
