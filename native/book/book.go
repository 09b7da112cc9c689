// Package book implements the protocol's two-level lazy accrual engine.
//
// A Book is a protocol-wide pool (the outstanding debt pool, the savings
// pool): it tracks total principal plus two monotonic accumulators,
// multiplier (compounded interest since inception) and accumulator
// (cumulative rewards per unit of inception-time principal). A Page is one
// participant's slice of a Book; it only ever advances toward the Book's
// current multiplier/accumulator, never past it.
//
// Every public Book and Page method accrues to "now" before doing anything
// else, so callers never need to remember to settle interest separately.
package book

import (
	"strconv"

	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/schedule"
	obsmetrics "github.com/covenant-finance/covenant/observability/metrics"
)

const (
	SecsPerDay  = 86_400
	SecsPerYear = 365 * SecsPerDay
)

// Config parameterizes a Book: its continuously-compounding annual interest
// rate and the schedule that generates its reward stream.
type Config struct {
	// InterestRate is an annualized continuous rate, e.g. ln(1+apy). Zero
	// disables interest accrual entirely (used by the savings book, which
	// only ever distributes Schedule-driven rewards).
	InterestRate   decimal.Decimal
	RewardSchedule schedule.Schedule
}

// Book is a protocol-wide accrual pool.
type Book struct {
	Total         decimal.Decimal
	Rewards       decimal.Decimal
	Multiplier    decimal.Decimal
	Accumulator   decimal.Decimal
	CreationTime  uint64
	LastUpdate    uint64
	// Name labels this Book ("debt", "savings") for metrics only; it plays
	// no part in accrual.
	Name string
}

// New creates a Book with both accumulators at their identity values.
func New(now uint64) Book {
	return Book{
		Total:        decimal.Zero(),
		Rewards:      decimal.Zero(),
		Multiplier:   decimal.One(),
		Accumulator:  decimal.Zero(),
		CreationTime: now,
		LastUpdate:   now,
	}
}

// SetName labels the Book for metrics reporting. It has no effect on
// accrual math.
func (b *Book) SetName(name string) {
	b.Name = name
}

// Accrue advances the Book to now. It is idempotent within the same second
// and must precede every other Book operation.
func (b *Book) Accrue(cfg Config, now uint64) error {
	if now == b.LastUpdate {
		return nil
	}
	newTotal, newMultiplier, err := b.projectTotalAndMultiplier(cfg, now)
	if err != nil {
		return err
	}
	newRewards, newAccumulator, err := b.projectRewardsAndAccumulator(cfg, now, newTotal, newMultiplier)
	if err != nil {
		return err
	}
	b.Total = newTotal
	b.Multiplier = newMultiplier
	b.Rewards = newRewards
	b.Accumulator = newAccumulator
	b.LastUpdate = now

	if f, err := strconv.ParseFloat(newTotal.String(), 64); err == nil {
		obsmetrics.Accrual().SetPoolTotal(b.Name, f)
	}
	if f, err := strconv.ParseFloat(newRewards.String(), 64); err == nil {
		obsmetrics.Accrual().SetRewardsDistributed(b.Name, f)
	}
	return nil
}

func (b *Book) projectTotalAndMultiplier(cfg Config, now uint64) (decimal.Decimal, decimal.Decimal, error) {
	secs := now - b.LastUpdate
	perSecondRate, err := cfg.InterestRate.DivUint64(SecsPerYear)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	factor, err := interest.Rate{RatePerSec: perSecondRate}.AccumulationFactor(secs)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	newTotal, err := b.Total.Mul(factor)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	newMultiplier, err := b.Multiplier.Mul(factor)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	return newTotal, newMultiplier, nil
}

func (b *Book) projectRewardsAndAccumulator(cfg Config, now uint64, total, multiplier decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	secsSinceLastUpdate := now - b.LastUpdate
	secsSinceCreation := now - b.CreationTime

	t1, err := decimal.FromUint64(secsSinceCreation - secsSinceLastUpdate).DivUint64(SecsPerDay)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	t2, err := decimal.FromUint64(secsSinceCreation).DivUint64(SecsPerDay)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	newRewards, err := cfg.RewardSchedule.Integrate(t1, t2)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	newRewardsTotal, err := b.Rewards.Add(newRewards)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}

	if total.LessThan(decimal.One()) {
		// Total too small: rewards for this slice are discarded rather than
		// carried over. Intentional (see spec open question #2).
		return b.Rewards, b.Accumulator, nil
	}

	scaled, err := newRewards.Mul(multiplier)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	delta, err := scaled.Div(total)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	newAccumulator, err := b.Accumulator.Add(delta)
	if err != nil {
		return decimal.Zero(), decimal.Zero(), err
	}
	return newRewardsTotal, newAccumulator, nil
}

// Add accrues and increases the Book's total by amount.
func (b *Book) Add(cfg Config, now uint64, amount decimal.Decimal) error {
	if err := b.Accrue(cfg, now); err != nil {
		return err
	}
	total, err := b.Total.Add(amount)
	if err != nil {
		return err
	}
	b.Total = total
	return nil
}

// Subtract accrues and decreases the Book's total by amount, faulting if
// amount exceeds the current total.
func (b *Book) Subtract(cfg Config, now uint64, amount decimal.Decimal) error {
	if err := b.Accrue(cfg, now); err != nil {
		return err
	}
	if amount.GreaterThan(b.Total) {
		return fault.New(fault.InsufficientBalance, "book total insufficient to subtract %s", amount)
	}
	total, err := b.Total.Sub(amount)
	if err != nil {
		return err
	}
	b.Total = total
	return nil
}

// GetTotal accrues and returns the current total.
func (b *Book) GetTotal(cfg Config, now uint64) (decimal.Decimal, error) {
	if err := b.Accrue(cfg, now); err != nil {
		return decimal.Zero(), err
	}
	return b.Total, nil
}
