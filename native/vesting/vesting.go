// Package vesting streams E emissions to a single recipient over time,
// scored against a Schedule rather than against any Book or deposited
// principal.
package vesting

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/schedule"
	"github.com/covenant-finance/covenant/native/token"
)

// Vesting is a single recipient's streaming allocation against a Schedule.
type Vesting struct {
	Recipient       crypto.Address
	Schedule        schedule.Schedule
	StartTime       uint64
	LastUpdatedTime uint64
}

// New starts a vesting stream for recipient as of now.
func New(now uint64, recipient crypto.Address, sched schedule.Schedule) Vesting {
	return Vesting{Recipient: recipient, Schedule: sched, StartTime: now, LastUpdatedTime: now}
}

// ClaimEmission mints the E emitted since the last claim, integrating the
// schedule over the elapsed day-span. A no-op if called twice in the same
// second.
func (v *Vesting) ClaimEmission(now uint64, caller crypto.Address, doveMint *token.Mint, authority token.Authority, balances *token.Balances) error {
	if caller != v.Recipient {
		return fault.New(fault.Unauthorized, "vesting claim not authorized")
	}
	secsSinceCreation := now - v.StartTime
	secsSinceLastUpdate := now - v.LastUpdatedTime
	if secsSinceLastUpdate == 0 {
		return nil
	}
	t1, err := decimal.FromUint64(secsSinceCreation - secsSinceLastUpdate).DivUint64(book.SecsPerDay)
	if err != nil {
		return err
	}
	t2, err := decimal.FromUint64(secsSinceCreation).DivUint64(book.SecsPerDay)
	if err != nil {
		return err
	}
	emissionDue, err := v.Schedule.Integrate(t1, t2)
	if err != nil {
		return err
	}
	if err := doveMint.MintTo(authority, balances, v.Recipient, emissionDue); err != nil {
		return err
	}
	v.LastUpdatedTime = now
	return nil
}

// UpdateRecipient reassigns who future emissions are claimed by.
func (v *Vesting) UpdateRecipient(caller, newRecipient crypto.Address) error {
	if caller != v.Recipient {
		return fault.New(fault.Unauthorized, "vesting recipient update not authorized")
	}
	v.Recipient = newRecipient
	return nil
}
