// Package ledger is the protocol's off-chain audit trail: durable, queryable
// rows, one per operation a caller records through Log.Record (the native
// protocol packages do not record their own operations; the rpc admin pause
// endpoint is the one writer in this tree), written through gorm to either
// sqlite (local/dev) or postgres
// (production), independent of the goleveldb-backed storage layer that
// holds the World itself.
package ledger

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Action names recorded against each Entry, spanning every state-mutating
// operation across Vault, Stability, Offering, and FlashMint.
const (
	ActionBorrow          = "borrow"
	ActionRepay           = "repay"
	ActionDeposit         = "deposit_collateral"
	ActionWithdraw        = "withdraw_collateral"
	ActionLiquidate       = "liquidate"
	ActionAuctionBid      = "auction_bid"
	ActionBuyCollateral   = "buy_collateral"
	ActionBuyDvd          = "buy_dvd"
	ActionSellDvd         = "sell_dvd"
	ActionOfferingBuy     = "offering_buy"
	ActionFlashMint       = "flash_mint"
	ActionSavingsDeposit  = "savings_deposit"
	ActionSavingsWithdraw = "savings_withdraw"
	ActionVestingClaim    = "vesting_claim"
	ActionSovereignRotate = "sovereign_rotate"
	ActionConfigUpdate    = "config_update"
)

// Entry is one committed operation against the protocol's World.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action    string    `gorm:"size:32;index"`
	Actor     string    `gorm:"size:64;index"`
	Subject   string    `gorm:"size:64;index"`
	Amount    string    `gorm:"size:96"`
	Detail    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// AutoMigrate creates or updates the ledger schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}

// Open connects to driver ("sqlite" or "postgres") using dsn and migrates
// the schema. sqlite is the default for local operation; postgres is meant
// for a shared production deployment.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Log wraps a *gorm.DB with the ledger's append-only write surface.
type Log struct {
	db *gorm.DB
}

// NewLog wraps an already-opened, already-migrated database handle.
func NewLog(db *gorm.DB) *Log {
	return &Log{db: db}
}

// Record appends one audit row. Recording is best-effort relative to the
// domain mutation it describes: callers commit the mutation first and log
// second, so a ledger write failure never blocks or rolls back protocol
// state.
func (l *Log) Record(ctx context.Context, action, actor, subject, amount, detail string) error {
	entry := Entry{
		ID:      uuid.New(),
		Action:  action,
		Actor:   actor,
		Subject: subject,
		Amount:  amount,
		Detail:  detail,
	}
	return l.db.WithContext(ctx).Create(&entry).Error
}

// RecentByActor returns the most recent entries for actor, newest first,
// bounded by limit.
func (l *Log) RecentByActor(ctx context.Context, actor string, limit int) ([]Entry, error) {
	var entries []Entry
	err := l.db.WithContext(ctx).
		Where("actor = ?", actor).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// RecentByAction returns the most recent entries for a given action,
// newest first, bounded by limit.
func (l *Log) RecentByAction(ctx context.Context, action string, limit int) ([]Entry, error) {
	var entries []Entry
	err := l.db.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
