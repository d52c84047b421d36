package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the persistence model for transactions. The txid unique
// index spans every row including soft-deleted ones, which is what enforces
// global txid uniqueness across the full history. The (wallet_id, amount)
// composite index backs the balance aggregation query.
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	WalletID  uuid.UUID       `gorm:"type:uuid;not null;index;index:idx_transactions_wallet_amount,priority:1"`
	Txid      string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"type:numeric(36,18);not null;index:idx_transactions_wallet_amount,priority:2"`
	IsDeleted bool            `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Wallet Wallet `gorm:"foreignKey:WalletID"`
}
