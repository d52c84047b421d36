package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"wallet-ledger.backend/internal/domain/entities"
	domainerrors "wallet-ledger.backend/internal/domain/errors"
	"wallet-ledger.backend/internal/domain/repositories"
	"wallet-ledger.backend/pkg/logger"
	"wallet-ledger.backend/pkg/utils"
)

// TransactionUsecase is the commit path: it validates a prospective
// transaction against the owning wallet's current balance and persists it
// as a single atomic unit. All balance reads happen under the wallet's
// row lock inside the enclosing store transaction, so two concurrent
// writers cannot both pass the non-negative check for amounts that would
// jointly overdraw the wallet.
type TransactionUsecase struct {
	txRepo     repositories.TransactionRepository
	walletRepo repositories.WalletRepository
	uow        repositories.UnitOfWork
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(txRepo repositories.TransactionRepository, walletRepo repositories.WalletRepository, uow repositories.UnitOfWork) *TransactionUsecase {
	return &TransactionUsecase{txRepo: txRepo, walletRepo: walletRepo, uow: uow}
}

// Create validates and persists a new transaction. A missing txid is
// replaced with a generated 32-hex token; a supplied one must not collide
// with any transaction regardless of soft-delete state.
func (u *TransactionUsecase) Create(ctx context.Context, input *entities.CreateTransactionInput) (*entities.Transaction, error) {
	var created *entities.Transaction

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		txid := input.Txid.String
		if !input.Txid.Valid || txid == "" {
			txid = utils.GenerateTxid()
		} else {
			exists, err := u.txRepo.ExistsByTxid(ctx, txid)
			if err != nil {
				return err
			}
			if exists {
				return domainerrors.NewValidationError("Transaction with this txid already exists.")
			}
		}

		wallet, err := u.resolveWalletLocked(ctx, input.WalletID)
		if err != nil {
			return err
		}

		if err := u.validateBalance(ctx, wallet.ID, input.Amount); err != nil {
			return err
		}

		tx := &entities.Transaction{
			WalletID: wallet.ID,
			Txid:     txid,
			Amount:   input.Amount,
		}
		if err := u.txRepo.Create(ctx, tx); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.NewValidationError("Transaction with this txid already exists.")
			}
			return err
		}

		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction committed",
		zap.String("transaction_id", created.ID.String()),
		zap.String("wallet_id", created.WalletID.String()),
		zap.String("amount", created.Amount.String()),
	)
	return created, nil
}

// Amend changes a transaction's amount. Validation uses the delta between
// the old and new amount against the wallet's current balance.
func (u *TransactionUsecase) Amend(ctx context.Context, id uuid.UUID, newAmount decimal.Decimal) (*entities.Transaction, error) {
	var amended *entities.Transaction

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		tx, err := u.txRepo.GetByID(ctx, id, repositories.ActiveOnly)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewTransactionNotFoundError(id)
			}
			return err
		}

		wallet, err := u.resolveWalletLocked(ctx, tx.WalletID)
		if err != nil {
			return err
		}

		// Re-read by identity under the lock; if the row vanished in the
		// meantime the whole new amount counts as the delta.
		diff := newAmount
		if old, err := u.txRepo.GetByID(ctx, id, repositories.ActiveOnly); err == nil {
			diff = newAmount.Sub(old.Amount)
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if err := u.validateBalance(ctx, wallet.ID, diff); err != nil {
			return err
		}

		tx.Amount = newAmount
		if err := u.txRepo.UpdateAmount(ctx, tx); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewTransactionNotFoundError(id)
			}
			return err
		}

		amended = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction amended",
		zap.String("transaction_id", amended.ID.String()),
		zap.String("amount", amended.Amount.String()),
	)
	return amended, nil
}

// SoftDelete flags a transaction as deleted. The transaction drops out of
// balance computation and default listings but stays retrievable through
// the include-deleted view. Deleting twice is rejected.
func (u *TransactionUsecase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.txRepo.SoftDelete(ctx, id); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewTransactionNotFoundError(id)
			}
			if errors.Is(err, domainerrors.ErrAlreadyDeleted) {
				return domainerrors.NewValidationError("Object is already deleted.")
			}
			return err
		}
		return nil
	})
}

// Get fetches a transaction. The default view excludes soft-deleted rows;
// pass IncludeDeleted for the privileged all-records view.
func (u *TransactionUsecase) Get(ctx context.Context, id uuid.UUID, mode repositories.QueryMode) (*entities.Transaction, error) {
	tx, err := u.txRepo.GetByID(ctx, id, mode)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewTransactionNotFoundError(id)
		}
		return nil, err
	}
	return tx, nil
}

// List lists non-deleted transactions, optionally restricted to one wallet
func (u *TransactionUsecase) List(ctx context.Context, walletID *uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	return u.txRepo.List(ctx, walletID, limit, offset)
}

// resolveWalletLocked resolves the owning wallet with its row locked, or
// fails the commit path when the transaction would not belong to a wallet.
func (u *TransactionUsecase) resolveWalletLocked(ctx context.Context, walletID uuid.UUID) (*entities.Wallet, error) {
	if walletID == uuid.Nil {
		return nil, domainerrors.NewValidationError("Transaction must belong to a wallet.")
	}
	wallet, err := u.walletRepo.GetByIDForUpdate(ctx, walletID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewValidationError("Transaction must belong to a wallet.")
		}
		return nil, err
	}
	return wallet, nil
}

// validateBalance checks that applying diff keeps the wallet's derived
// balance non-negative. The balance is always computed fresh; no cached
// value may authorize a write.
func (u *TransactionUsecase) validateBalance(ctx context.Context, walletID uuid.UUID, diff decimal.Decimal) error {
	balance, err := u.walletRepo.Balance(ctx, walletID)
	if err != nil {
		return err
	}
	if balance.Add(diff).IsNegative() {
		return domainerrors.NewValidationError("Wallet balance cannot become negative.")
	}
	return nil
}
