package book

import (
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
)

// Page is one participant's slice of a Book: a debtor's position against
// the debt Book, a saver's position against the savings Book.
type Page struct {
	Total       decimal.Decimal
	Rewards     decimal.Decimal
	Multiplier  decimal.Decimal
	Accumulator decimal.Decimal
}

// NewPage returns a Page at the multiplier/accumulator identity, ready to
// track against a Book from this moment on.
func NewPage() Page {
	return Page{
		Total:       decimal.Zero(),
		Rewards:     decimal.Zero(),
		Multiplier:  decimal.One(),
		Accumulator: decimal.Zero(),
	}
}

// IsZero reports whether this Page currently carries no principal.
func (p Page) IsZero() bool { return p.Total.IsZero() }

// accrue refreshes the Book to now, then scales this Page's total by the
// Book's multiplier growth and adds rewards earned since the last refresh.
// Multiplier and accumulator may never decrease; a Book that somehow regresses
// is an invariant violation, not a recoverable condition.
func (p *Page) accrue(b *Book, cfg Config, now uint64) error {
	if err := b.Accrue(cfg, now); err != nil {
		return err
	}
	multiplier, accumulator := b.Multiplier, b.Accumulator

	if multiplier.Cmp(p.Multiplier) != 0 {
		if multiplier.LessThan(p.Multiplier) {
			return fault.New(fault.InvalidState, "book multiplier cannot decrease")
		}
		ratio, err := multiplier.Div(p.Multiplier)
		if err != nil {
			return err
		}
		total, err := p.Total.Mul(ratio)
		if err != nil {
			return err
		}
		p.Total = total
		p.Multiplier = multiplier
	}

	if accumulator.Cmp(p.Accumulator) != 0 {
		if accumulator.LessThan(p.Accumulator) {
			return fault.New(fault.InvalidState, "book accumulator cannot decrease")
		}
		delta, err := accumulator.Sub(p.Accumulator)
		if err != nil {
			return err
		}
		share, err := p.Total.Div(p.Multiplier)
		if err != nil {
			return err
		}
		earned, err := share.Mul(delta)
		if err != nil {
			return err
		}
		rewards, err := p.Rewards.Add(earned)
		if err != nil {
			return err
		}
		p.Rewards = rewards
		p.Accumulator = accumulator
	}
	return nil
}

// GetTotal accrues and returns this Page's current total.
func (p *Page) GetTotal(b *Book, cfg Config, now uint64) (decimal.Decimal, error) {
	if err := p.accrue(b, cfg, now); err != nil {
		return decimal.Zero(), err
	}
	return p.Total, nil
}

// ClaimRewards accrues and zeroes out this Page's claimable rewards,
// returning the amount claimed.
func (p *Page) ClaimRewards(b *Book, cfg Config, now uint64) (decimal.Decimal, error) {
	if err := p.accrue(b, cfg, now); err != nil {
		return decimal.Zero(), err
	}
	return p.Rewards.Take(), nil
}

// Add accrues, then increases this Page's total and the Book's total
// symmetrically.
func (p *Page) Add(b *Book, cfg Config, now uint64, amount decimal.Decimal) error {
	if err := p.accrue(b, cfg, now); err != nil {
		return err
	}
	total, err := p.Total.Add(amount)
	if err != nil {
		return err
	}
	p.Total = total
	return b.Add(cfg, now, amount)
}

// Subtract accrues, then decreases this Page's total and the Book's total
// symmetrically, faulting if amount exceeds this Page's total.
func (p *Page) Subtract(b *Book, cfg Config, now uint64, amount decimal.Decimal) error {
	if err := p.accrue(b, cfg, now); err != nil {
		return err
	}
	if amount.GreaterThan(p.Total) {
		return fault.New(fault.InsufficientBalance, "page total insufficient to subtract %s", amount)
	}
	total, err := p.Total.Sub(amount)
	if err != nil {
		return err
	}
	p.Total = total
	return b.Subtract(cfg, now, amount)
}

// Take accrues, zeroes this Page's total, and subtracts the same amount from
// the Book, returning the amount taken. Used when socializing debt away
// (the failed-auction path) and when a vault is fully paid off.
func (p *Page) Take(b *Book, cfg Config, now uint64) (decimal.Decimal, error) {
	if err := p.accrue(b, cfg, now); err != nil {
		return decimal.Zero(), err
	}
	total := p.Total.Take()
	if err := b.Subtract(cfg, now, total); err != nil {
		return decimal.Zero(), err
	}
	return total, nil
}
