// Package offering implements the protocol's surplus/deficit auction: when
// assets (accrued debt plus stable-minted D) exceed liabilities (D supply
// plus accrued savings) by more than a threshold, D is minted and sold for
// E (which is burned); when liabilities exceed assets, E is minted and
// sold for D (which is burned). Exactly one such auction runs at a time.
package offering

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/auction"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/token"
	"github.com/covenant-finance/covenant/native/world"
)

// Config governs offering sizing and the surplus/deficit thresholds that
// must be crossed before a new auction may start.
type Config struct {
	SurplusLimit    decimal.Decimal
	DeficitLimit    decimal.Decimal
	DvdOfferingSize decimal.Decimal
	DoveOfferingSize decimal.Decimal
}

// State is which side of the balance sheet is currently being corrected.
type State int

const (
	StateInactive State = iota
	StateDoveOffering
	StateDvdOffering
)

// Offering is the protocol's currently-running (or inactive) surplus or
// deficit auction.
type Offering struct {
	State        State
	QtyRemaining decimal.Decimal
	Auction      auction.Auction
}

// New starts with no active auction.
func New() Offering { return Offering{State: StateInactive} }

// IsActive reports whether an auction is currently running.
func (o *Offering) IsActive() bool { return o.State != StateInactive }

// Start begins a new auction once the system's current imbalance crosses
// the configured surplus or deficit threshold. dovePrice is E's current
// price in D, already queried by the caller via its configured oracle.
func (o *Offering) Start(
	now uint64,
	debtBook *book.Book, debtCfg book.Config,
	savingsBook *book.Book, savingsCfg book.Config,
	dvdSupply decimal.Decimal, stableDvd *world.StableDvd,
	dovePrice decimal.Decimal, cfg Config,
) error {
	if o.State != StateInactive {
		return fault.New(fault.InvalidState, "can't start new debt/equity offering until current is finished")
	}
	debtTotal, err := debtBook.GetTotal(debtCfg, now)
	if err != nil {
		return err
	}
	savingsTotal, err := savingsBook.GetTotal(savingsCfg, now)
	if err != nil {
		return err
	}
	assets, err := debtTotal.Add(stableDvd.Circulating)
	if err != nil {
		return err
	}
	liabilities, err := dvdSupply.Add(savingsTotal)
	if err != nil {
		return err
	}

	if assets.GreaterThan(liabilities) {
		surplus, err := assets.Sub(liabilities)
		if err != nil {
			return err
		}
		if !surplus.GreaterThan(cfg.SurplusLimit) {
			return fault.New(fault.InvalidState, "surplus is too low to merit auction")
		}
		debtPrice, err := decimal.One().Div(dovePrice)
		if err != nil {
			return err
		}
		o.State = StateDvdOffering
		o.QtyRemaining = cfg.DvdOfferingSize
		o.Auction = auction.New([]decimal.Decimal{debtPrice}, now)
		return nil
	}

	deficit, err := liabilities.Sub(assets)
	if err != nil {
		return err
	}
	if !deficit.GreaterThan(cfg.DeficitLimit) {
		return fault.New(fault.InvalidState, "deficit is too low to merit auction")
	}
	o.State = StateDoveOffering
	o.QtyRemaining = cfg.DoveOfferingSize
	o.Auction = auction.New([]decimal.Decimal{dovePrice}, now)
	return nil
}

// End closes the current auction once it has either sold out or expired.
func (o *Offering) End(now uint64, auctionCfg auction.Config) error {
	if o.State == StateInactive {
		return fault.New(fault.InvalidState, "no active offering to end")
	}
	if !o.QtyRemaining.IsZero() {
		isOver, err := o.Auction.IsOver(auctionCfg, now)
		if err != nil {
			return err
		}
		if !isOver {
			return fault.New(fault.InvalidState, "auction has not ended yet")
		}
	}
	o.State = StateInactive
	return nil
}

// Buy fills up to requestedBaseAmount of base currency (D, for a dove
// offering; E, for a dvd offering) at the auction's current price, minting
// the offered side and burning the paid side.
func (o *Offering) Buy(
	requestedBaseAmount decimal.Decimal, now uint64, auctionCfg auction.Config,
	dvdMint, doveMint *token.Mint, authority token.Authority,
	dvdBalances, doveBalances *token.Balances, buyer crypto.Address,
) error {
	switch o.State {
	case StateDvdOffering:
		price, err := o.Auction.Price(auctionCfg, now, 0)
		if err != nil {
			return err
		}
		requested, err := requestedBaseAmount.Div(price)
		if err != nil {
			return err
		}
		dvdAmount := decimal.Min(requested, o.QtyRemaining)
		if dvdAmount.IsZero() {
			return fault.New(fault.InvalidState, "nothing to buy")
		}
		paid, err := dvdAmount.Mul(price)
		if err != nil {
			return err
		}
		doveAmount := decimal.Min(paid, requestedBaseAmount)

		if err := dvdMint.MintTo(authority, dvdBalances, buyer, dvdAmount); err != nil {
			return err
		}
		if err := doveMint.Burn(doveBalances, buyer, doveAmount); err != nil {
			return err
		}
		remaining, err := o.QtyRemaining.Sub(dvdAmount)
		if err != nil {
			return err
		}
		o.QtyRemaining = remaining
		return nil

	case StateDoveOffering:
		price, err := o.Auction.Price(auctionCfg, now, 0)
		if err != nil {
			return err
		}
		requested, err := requestedBaseAmount.Div(price)
		if err != nil {
			return err
		}
		doveAmount := decimal.Min(requested, o.QtyRemaining)
		if doveAmount.IsZero() {
			return fault.New(fault.InvalidState, "nothing to buy")
		}
		paid, err := doveAmount.Mul(price)
		if err != nil {
			return err
		}
		dvdAmount := decimal.Min(paid, requestedBaseAmount)

		if err := doveMint.MintTo(authority, doveBalances, buyer, doveAmount); err != nil {
			return err
		}
		if err := dvdMint.Burn(dvdBalances, buyer, dvdAmount); err != nil {
			return err
		}
		remaining, err := o.QtyRemaining.Sub(doveAmount)
		if err != nil {
			return err
		}
		o.QtyRemaining = remaining
		return nil

	default:
		return fault.New(fault.InvalidState, "no active offering")
	}
}
