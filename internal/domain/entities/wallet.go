package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet represents an account identified by a label. Its balance is never
// stored; it is derived from the wallet's non-deleted transactions.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsDeleted bool      `json:"isDeleted"`
}

// CreateWalletInput represents input for creating a wallet
type CreateWalletInput struct {
	Label string `json:"label" binding:"required"`
}

// UpdateWalletInput represents input for updating a wallet label
type UpdateWalletInput struct {
	Label string `json:"label" binding:"required"`
}

// CashFlowInput represents a deposit (positive amount) or withdrawal
// (negative amount) against a single wallet
type CashFlowInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferInput represents input for a two-wallet transfer
type TransferInput struct {
	SourceWallet      uuid.UUID       `json:"sourceWallet" binding:"required"`
	DestinationWallet uuid.UUID       `json:"destinationWallet" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}
