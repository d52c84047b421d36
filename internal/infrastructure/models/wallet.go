package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is the persistence model for wallets. Soft delete is an explicit
// boolean so that deleted rows stay queryable through the include-deleted
// repository mode; gorm.DeletedAt would hide them from every query.
type Wallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Label     string    `gorm:"type:varchar(255);not null;index"`
	IsDeleted bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
