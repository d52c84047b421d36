package repositories

import (
	"context"

	"github.com/google/uuid"
	"wallet-ledger.backend/internal/domain/entities"
)

// TransactionRepository defines transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID, mode QueryMode) (*entities.Transaction, error)
	// ExistsByTxid checks txid uniqueness across every soft-delete state.
	ExistsByTxid(ctx context.Context, txid string) (bool, error)
	List(ctx context.Context, walletID *uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
	UpdateAmount(ctx context.Context, tx *entities.Transaction) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
