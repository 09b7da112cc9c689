package protocol

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/flashmint"
	"github.com/covenant-finance/covenant/native/offering"
	"github.com/covenant-finance/covenant/native/schedule"
	"github.com/covenant-finance/covenant/native/token"
	"github.com/covenant-finance/covenant/native/vesting"
	"github.com/covenant-finance/covenant/native/world"
)

// World is the protocol's single global state aggregate.
//
// Callers must never assign World's fields directly — always go through
// the associated-method surface on the embedded types (Book, Offering,
// FlashMint, Sovereign, ...), which is what actually enforces the protocol's
// invariants.
type World struct {
	Initialized bool

	Dove         token.Mint
	DoveBalances token.Balances
	Dvd          token.Mint
	DvdBalances  token.Balances

	Debt    book.Book
	Savings book.Book

	StableDvd world.StableDvd
	DvdPrice  dvdprice.DvdPrice

	Offering  offering.Offering
	FlashMint flashmint.FlashMint
	Sovereign world.Sovereign
	Vesting   vesting.Vesting

	Config Config
}

// InitParams groups the one-time construction inputs for a new World.
type InitParams struct {
	DoveMint         crypto.Address
	DvdMint          crypto.Address
	Sovereign        crypto.Address
	VestingRecipient crypto.Address
	VestingSchedule  schedule.Schedule
	DvdDecimals      uint8
	DoveDecimals     uint8
	Now              uint64
}

// NewWorld constructs the root aggregate, one time, from InitParams.
func NewWorld(params InitParams) World {
	debt := book.New(params.Now)
	debt.SetName("debt")
	savings := book.New(params.Now)
	savings.SetName("savings")
	return World{
		Initialized:  true,
		Dove:         token.NewMint(params.DoveMint, params.DoveDecimals),
		DoveBalances: token.NewBalances(),
		Dvd:          token.NewMint(params.DvdMint, params.DvdDecimals),
		DvdBalances:  token.NewBalances(),
		Debt:         debt,
		Savings:      savings,
		StableDvd:    world.NewStableDvd(),
		DvdPrice:     dvdprice.New(params.Now),
		Offering:     offering.New(),
		FlashMint:    flashmint.New(),
		Sovereign:    world.NewSovereign(params.Sovereign),
		Vesting:      vesting.New(params.Now, params.VestingRecipient, params.VestingSchedule),
	}
}

// IsInitialized reports whether this World has been constructed yet.
func (w *World) IsInitialized() bool { return w.Initialized }

// RotateSovereign replaces the sovereign key, checking authorization from
// the caller's address directly rather than requiring a pre-authorized
// SovereignAuth token.
func (w *World) RotateSovereign(caller, newKey crypto.Address) error {
	auth, err := w.Sovereign.Authorize(caller)
	if err != nil {
		return err
	}
	w.Sovereign.Rotate(auth, newKey)
	return nil
}

// UpdateConfig replaces the entire Config, gated on sovereign
// authorization.
func (w *World) UpdateConfig(caller crypto.Address, newConfig Config) error {
	auth, err := w.Sovereign.Authorize(caller)
	if err != nil {
		return err
	}
	w.Config.Update(auth, newConfig)
	return nil
}
