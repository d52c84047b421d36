package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wallet-ledger.backend/internal/domain/entities"
)

// QueryMode controls whether soft-deleted records are visible to a lookup.
// Default collection views exclude deleted records; the include-deleted mode
// exists for not-found-vs-deleted disambiguation and admin inspection.
type QueryMode int

const (
	ActiveOnly QueryMode = iota
	IncludeDeleted
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID, mode QueryMode) (*entities.Wallet, error)
	// GetByIDForUpdate locks the wallet row for the duration of the enclosing
	// store transaction. Callers must be inside UnitOfWork.Do.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	List(ctx context.Context, labelFilter string, limit, offset int) ([]*entities.Wallet, int64, error)
	Update(ctx context.Context, wallet *entities.Wallet) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// Balance sums the amounts of the wallet's non-deleted transactions.
	// Returns zero when the wallet has no transactions.
	Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}
