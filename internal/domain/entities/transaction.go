package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// Transaction represents a signed monetary entry belonging to one wallet.
// Once committed it is immutable except for amount amendments, which are
// re-validated against the wallet balance.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	WalletID  uuid.UUID       `json:"walletId"`
	Txid      string          `json:"txid"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	IsDeleted bool            `json:"isDeleted"`
}

// CreateTransactionInput represents input for creating a transaction.
// Txid is optional; a unique token is generated when absent.
type CreateTransactionInput struct {
	WalletID uuid.UUID       `json:"walletId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Txid     null.String     `json:"txid"`
}

// AmendTransactionInput represents input for amending a transaction amount
type AmendTransactionInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
