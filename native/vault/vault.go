package vault

import (
	"github.com/covenant-finance/covenant/crypto"
	"github.com/covenant-finance/covenant/native/auction"
	"github.com/covenant-finance/covenant/native/book"
	"github.com/covenant-finance/covenant/native/collateral"
	"github.com/covenant-finance/covenant/native/decimal"
	"github.com/covenant-finance/covenant/native/dvdprice"
	"github.com/covenant-finance/covenant/native/fault"
	"github.com/covenant-finance/covenant/native/interest"
	"github.com/covenant-finance/covenant/native/oracle"
	"github.com/covenant-finance/covenant/native/token"
)

// Config governs liquidation economics, shared across every vault.
type Config struct {
	LiquidationPenaltyRate   decimal.Decimal
	LiquidationRewardCap     decimal.Decimal
	LiquidationRewardRate    decimal.Decimal
	AuctionFailureRewardCap  decimal.Decimal
	AuctionFailureRewardRate decimal.Decimal
}

// Vault is a single borrower's position: owner identity, per-collateral
// reserves, a debt Page against the shared debt Book, and — while being
// liquidated — an Auction over its reserves.
type Vault struct {
	Owner    crypto.Address
	Debt     book.Page
	Reserves []Reserve
	Auction  *auction.Auction
}

// New opens an empty vault for owner.
func New(owner crypto.Address) Vault {
	return Vault{Owner: owner, Debt: book.NewPage()}
}

func (v *Vault) requireHealthy() error {
	if v.Auction != nil {
		return fault.New(fault.InvalidState, "vault is liquidated")
	}
	return nil
}

func (v *Vault) findReserve(mint crypto.Address) (*Reserve, error) {
	for i := range v.Reserves {
		if v.Reserves[i].Mint == mint {
			return &v.Reserves[i], nil
		}
	}
	return nil, fault.New(fault.InvalidArgument, "reserve not found for mint %s", mint)
}

// CreateReserve opens a new zero-balance reserve for c. It refuses while the
// vault is liquidated, once MaxReserves are held, or for a mint the vault
// already holds; it does not check who the caller is.
func (v *Vault) CreateReserve(c *collateral.Collateral) error {
	if err := v.requireHealthy(); err != nil {
		return err
	}
	if len(v.Reserves) >= MaxReserves {
		return fault.New(fault.InvalidArgument, "vault already holds the maximum number of reserves")
	}
	if _, err := v.findReserve(c.Mint.Key); err == nil {
		return fault.New(fault.InvalidArgument, "reserve already exists")
	}
	v.Reserves = append(v.Reserves, NewReserve(c))
	return nil
}

// RemoveReserve drops an empty reserve.
func (v *Vault) RemoveReserve(mint crypto.Address) error {
	if err := v.requireHealthy(); err != nil {
		return err
	}
	for i := range v.Reserves {
		if v.Reserves[i].Mint != mint {
			continue
		}
		if !v.Reserves[i].Balance.IsZero() {
			return fault.New(fault.InvalidState, "reserve is not empty")
		}
		v.Reserves = append(v.Reserves[:i], v.Reserves[i+1:]...)
		return nil
	}
	return fault.New(fault.InvalidArgument, "reserve not found")
}

// Deposit adds amount of collateral c's asset to this vault's reserve for
// c, pulling the funds from the depositor's balance.
func (v *Vault) Deposit(balances *token.Balances, c *collateral.Collateral, from crypto.Address, amount decimal.Decimal) error {
	if err := v.requireHealthy(); err != nil {
		return err
	}
	reserve, err := v.findReserve(c.Mint.Key)
	if err != nil {
		return err
	}
	return reserve.Deposit(balances, c, from, amount)
}

func sumReserveValues(reserves []Reserve, collaterals []*collateral.Collateral, feeds []oracle.Feed, now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate) (decimal.Decimal, error) {
	sum := decimal.Zero()
	for i := range reserves {
		value, err := reserves[i].GetValue(collaterals[i], feeds[i], now, price, dvdRate)
		if err != nil {
			return decimal.Zero(), err
		}
		sum, err = sum.Add(value)
		if err != nil {
			return decimal.Zero(), err
		}
	}
	return sum, nil
}

// Withdraw pays out up to the least of the caller's request, the vault's
// remaining safe loan-to-value headroom, and the reserve's balance.
// collaterals and feeds must be supplied in the same order as v.Reserves.
func (v *Vault) Withdraw(
	requestedAmount decimal.Decimal,
	debtBook *book.Book, debtCfg book.Config, maxLTV decimal.Decimal,
	balances *token.Balances, authority token.Authority, to crypto.Address,
	collaterals []*collateral.Collateral, feeds []oracle.Feed, reserveIndex int,
	now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate,
) error {
	if err := v.requireHealthy(); err != nil {
		return err
	}
	if reserveIndex < 0 || reserveIndex >= len(v.Reserves) {
		return fault.New(fault.InvalidArgument, "invalid reserve index")
	}
	collateralValue, err := sumReserveValues(v.Reserves, collaterals, feeds, now, price, dvdRate)
	if err != nil {
		return err
	}
	debt, err := v.Debt.GetTotal(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	debtOverLTV, err := debt.Div(maxLTV)
	if err != nil {
		return err
	}
	maxWithdrawValue := collateralValue.SaturatingSub(debtOverLTV)

	reserveCollateralPrice, err := collaterals[reserveIndex].GetPrice(feeds[reserveIndex], now, price, dvdRate)
	if err != nil {
		return err
	}
	maxWithdrawAmount, err := maxWithdrawValue.Div(reserveCollateralPrice)
	if err != nil {
		return err
	}

	reserve := &v.Reserves[reserveIndex]
	amount := decimal.Min(requestedAmount, decimal.Min(maxWithdrawAmount, reserve.Balance))
	if amount.IsZero() {
		return fault.New(fault.InvalidArgument, "amount must be greater than zero")
	}
	return reserve.Withdraw(authority, balances, collaterals[reserveIndex], to, amount)
}

// Borrow mints up to min(available borrow headroom, requested amount) of D
// against this vault's reserves. collaterals and feeds must be supplied in
// the same order as v.Reserves.
func (v *Vault) Borrow(
	requestedAmount decimal.Decimal,
	debtBook *book.Book, debtCfg book.Config, dvdMint *token.Mint, maxLTV decimal.Decimal,
	authority token.Authority, balances *token.Balances, to crypto.Address,
	collaterals []*collateral.Collateral, feeds []oracle.Feed,
	now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate,
) error {
	if err := v.requireHealthy(); err != nil {
		return err
	}
	collateralValue, err := sumReserveValues(v.Reserves, collaterals, feeds, now, price, dvdRate)
	if err != nil {
		return err
	}
	borrowLimit, err := collateralValue.Mul(maxLTV)
	if err != nil {
		return err
	}
	debt, err := v.Debt.GetTotal(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	available := borrowLimit.SaturatingSub(debt)
	amount := decimal.Min(available, requestedAmount)

	if err := v.Debt.Add(debtBook, debtCfg, now, amount); err != nil {
		return err
	}
	return dvdMint.MintTo(authority, balances, to, amount)
}

// Repay burns up to min(requested amount, current debt) of D against this
// vault's debt. Permitted even while liquidated, to reduce collateral loss.
func (v *Vault) Repay(
	requestedAmount decimal.Decimal,
	debtBook *book.Book, debtCfg book.Config, dvdMint *token.Mint,
	balances *token.Balances, from crypto.Address, now uint64,
) error {
	debt, err := v.Debt.GetTotal(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	amount := decimal.Min(requestedAmount, debt)
	if err := v.Debt.Subtract(debtBook, debtCfg, now, amount); err != nil {
		return err
	}
	return dvdMint.Burn(balances, from, amount)
}

// ClaimRewards mints this vault's accrued E rewards from its debt Page.
func (v *Vault) ClaimRewards(
	debtBook *book.Book, debtCfg book.Config, eMint *token.Mint,
	authority token.Authority, balances *token.Balances, to crypto.Address, now uint64,
) error {
	if err := v.requireHealthy(); err != nil {
		return err
	}
	amount, err := v.Debt.ClaimRewards(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	return eMint.MintTo(authority, balances, to, amount)
}

// Liquidate places an unhealthy vault (debt exceeding collateral_value *
// max_ltv) up for auction: snapshots current reserve market prices, adds a
// penalty to the debt, and rewards the caller. collaterals and feeds must be
// supplied in the same order as v.Reserves.
func (v *Vault) Liquidate(
	maxLTV decimal.Decimal,
	debtBook *book.Book, debtCfg book.Config, cfg Config, dvdMint *token.Mint,
	collaterals []*collateral.Collateral, feeds []oracle.Feed,
	authority token.Authority, balances *token.Balances, caller crypto.Address,
	now uint64, price *dvdprice.DvdPrice, dvdRate interest.Rate,
) error {
	if v.Auction != nil {
		return fault.New(fault.InvalidState, "vault is already liquidated")
	}
	collateralValue, err := sumReserveValues(v.Reserves, collaterals, feeds, now, price, dvdRate)
	if err != nil {
		return err
	}
	maxDebt, err := collateralValue.Mul(maxLTV)
	if err != nil {
		return err
	}
	debt, err := v.Debt.GetTotal(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	if !debt.GreaterThan(maxDebt) {
		return fault.New(fault.InvalidState, "vault is not unhealthy")
	}

	marketPrices := make([]decimal.Decimal, len(v.Reserves))
	for i := range v.Reserves {
		p, err := collaterals[i].GetPrice(feeds[i], now, price, dvdRate)
		if err != nil {
			return err
		}
		marketPrices[i] = p
	}
	a := auction.New(marketPrices, now)
	v.Auction = &a

	penalty, err := debt.Mul(cfg.LiquidationPenaltyRate)
	if err != nil {
		return err
	}
	if err := v.Debt.Add(debtBook, debtCfg, now, penalty); err != nil {
		return err
	}

	rewardByRate, err := debt.Mul(cfg.LiquidationRewardRate)
	if err != nil {
		return err
	}
	reward := decimal.Min(rewardByRate, cfg.LiquidationRewardCap)
	return dvdMint.MintTo(authority, balances, caller, reward)
}

// Unliquidate lifts liquidation once the debt has been fully repaid.
func (v *Vault) Unliquidate() error {
	if v.Auction == nil {
		return fault.New(fault.InvalidState, "vault is not liquidated")
	}
	if !v.Debt.IsZero() {
		return fault.New(fault.InvalidState, "vault has debt")
	}
	v.Auction = nil
	return nil
}

// FailAuction ends an auction that ran past end_scale (or exhausted every
// reserve) without fully repaying debt: the remaining debt is socialized
// away, and the caller is rewarded.
func (v *Vault) FailAuction(
	debtBook *book.Book, debtCfg book.Config, cfg Config, auctionCfg auction.Config, dvdMint *token.Mint,
	authority token.Authority, balances *token.Balances, caller crypto.Address, now uint64,
) error {
	if v.Auction == nil {
		return fault.New(fault.InvalidState, "vault is not liquidated")
	}
	isOver, err := v.Auction.IsOver(auctionCfg, now)
	if err != nil {
		return err
	}
	if !isOver {
		allEmpty := true
		for i := range v.Reserves {
			if !v.Reserves[i].Balance.IsZero() {
				allEmpty = false
				break
			}
		}
		if !allEmpty {
			return fault.New(fault.InvalidState, "auction is not over")
		}
	}
	v.Auction = nil

	debt, err := v.Debt.Take(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	rewardByRate, err := debt.Mul(cfg.AuctionFailureRewardRate)
	if err != nil {
		return err
	}
	reward := decimal.Min(rewardByRate, cfg.AuctionFailureRewardCap)
	return dvdMint.MintTo(authority, balances, caller, reward)
}

// BuyCollateral lets a caller pay D to receive a liquidated vault's
// collateral at the auction's current decayed price, prioritizing (1)
// paying off all debt if affordable, then (2) buying out a reserve entirely
// if affordable, then (3) a proportional partial fill.
func (v *Vault) BuyCollateral(
	requestedDvdAmount decimal.Decimal,
	debtBook *book.Book, debtCfg book.Config, dvdMint *token.Mint, auctionCfg auction.Config,
	c *collateral.Collateral, collateralIndex int,
	authority token.Authority, balances *token.Balances, buyer crypto.Address, to crypto.Address,
	now uint64,
) error {
	if v.Auction == nil {
		return fault.New(fault.InvalidState, "vault is not liquidated")
	}
	auctionPrice, err := v.Auction.Price(auctionCfg, now, collateralIndex)
	if err != nil {
		return err
	}

	reserve := &v.Reserves[collateralIndex]
	maxCollateralAmount := reserve.Balance
	maxDvdAmount, err := v.Debt.GetTotal(debtBook, debtCfg, now)
	if err != nil {
		return err
	}
	requestedCollateralAmount, err := requestedDvdAmount.Div(auctionPrice)
	if err != nil {
		return err
	}

	var collateralAmount, dvdAmount decimal.Decimal
	maxDebtCollateralAmount, err := maxDvdAmount.Div(auctionPrice)
	if err != nil {
		return err
	}
	maxCollateralDvdAmount, err := maxCollateralAmount.Mul(auctionPrice)
	if err != nil {
		return err
	}
	switch {
	case !requestedDvdAmount.LessThan(maxDvdAmount) && !maxDebtCollateralAmount.GreaterThan(maxCollateralAmount):
		collateralAmount, dvdAmount = maxDebtCollateralAmount, maxDvdAmount
	case !requestedCollateralAmount.LessThan(maxCollateralAmount) && !maxCollateralDvdAmount.GreaterThan(maxDvdAmount):
		collateralAmount, dvdAmount = maxCollateralAmount, maxCollateralDvdAmount
	default:
		collateralAmount, dvdAmount = requestedCollateralAmount, requestedDvdAmount
	}

	if err := reserve.Withdraw(authority, balances, c, to, collateralAmount); err != nil {
		return err
	}
	if err := dvdMint.Burn(balances, buyer, dvdAmount); err != nil {
		return err
	}
	return v.Debt.Subtract(debtBook, debtCfg, now, dvdAmount)
}
