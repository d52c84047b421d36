package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"wallet-ledger.backend/internal/domain/entities"
	domainerrors "wallet-ledger.backend/internal/domain/errors"
	"wallet-ledger.backend/internal/domain/repositories"
	"wallet-ledger.backend/pkg/logger"
)

// WalletUsecase orchestrates wallet lifecycle and cash-flow operations.
// Deposits, withdrawals and two-wallet transfers each run inside one
// UnitOfWork scope so that wallet lookup, balance pre-check and the commit
// path either commit together or leave no trace.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	txUsecase  *TransactionUsecase
	uow        repositories.UnitOfWork
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.WalletRepository, txUsecase *TransactionUsecase, uow repositories.UnitOfWork) *WalletUsecase {
	return &WalletUsecase{walletRepo: walletRepo, txUsecase: txUsecase, uow: uow}
}

// Create creates a new wallet with a zero derived balance
func (u *WalletUsecase) Create(ctx context.Context, input *entities.CreateWalletInput) (*entities.Wallet, error) {
	if strings.TrimSpace(input.Label) == "" {
		return nil, domainerrors.NewValidationError("Wallet label must not be empty.")
	}

	wallet := &entities.Wallet{Label: input.Label}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	logger.Info(ctx, "wallet created", zap.String("wallet_id", wallet.ID.String()))
	return wallet, nil
}

// Update edits a wallet's label, the only mutable attribute
func (u *WalletUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error) {
	if strings.TrimSpace(input.Label) == "" {
		return nil, domainerrors.NewValidationError("Wallet label must not be empty.")
	}

	var updated *entities.Wallet
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.walletRepo.GetByID(ctx, id, repositories.ActiveOnly)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewWalletNotFoundError(id)
			}
			return err
		}

		wallet.Label = input.Label
		if err := u.walletRepo.Update(ctx, wallet); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewWalletNotFoundError(id)
			}
			return err
		}
		updated = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDelete flags a wallet as deleted; its transaction history stays in
// storage. Deleting twice is rejected.
func (u *WalletUsecase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.walletRepo.SoftDelete(ctx, id); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewWalletNotFoundError(id)
			}
			if errors.Is(err, domainerrors.ErrAlreadyDeleted) {
				return domainerrors.NewValidationError("Object is already deleted.")
			}
			return err
		}
		return nil
	})
}

// Get fetches a wallet. The default view excludes soft-deleted wallets.
func (u *WalletUsecase) Get(ctx context.Context, id uuid.UUID, mode repositories.QueryMode) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByID(ctx, id, mode)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewWalletNotFoundError(id)
		}
		return nil, err
	}
	return wallet, nil
}

// List lists non-deleted wallets with optional label filtering
func (u *WalletUsecase) List(ctx context.Context, labelFilter string, limit, offset int) ([]*entities.Wallet, int64, error) {
	return u.walletRepo.List(ctx, labelFilter, limit, offset)
}

// GetBalance returns the wallet's derived balance
func (u *WalletUsecase) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	if _, err := u.walletRepo.GetByID(ctx, id, repositories.ActiveOnly); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return decimal.Zero, domainerrors.NewWalletNotFoundError(id)
		}
		return decimal.Zero, err
	}
	return u.walletRepo.Balance(ctx, id)
}

// ApplyCashFlow applies a deposit (positive amount) or withdrawal (negative
// amount) to a wallet. The orchestrator pre-checks the resulting balance
// and reports an overdraw as BalanceNegativeError before invoking the
// commit path.
func (u *WalletUsecase) ApplyCashFlow(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*entities.Transaction, error) {
	var tx *entities.Transaction

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.walletRepo.GetByIDForUpdate(ctx, walletID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NewWalletNotFoundError(walletID)
			}
			return err
		}

		balance, err := u.walletRepo.Balance(ctx, wallet.ID)
		if err != nil {
			return err
		}
		if balance.Add(amount).IsNegative() {
			return domainerrors.NewBalanceNegativeError(wallet.ID)
		}

		tx, err = u.txUsecase.Create(ctx, &entities.CreateTransactionInput{
			WalletID: wallet.ID,
			Amount:   amount,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "cash flow applied",
		zap.String("wallet_id", walletID.String()),
		zap.String("amount", amount.String()),
	)
	return tx, nil
}

// Transfer moves amount from the source wallet to the destination wallet as
// one atomic unit. If crediting the destination fails after the source was
// debited, the whole operation rolls back as if neither leg was written.
func (u *WalletUsecase) Transfer(ctx context.Context, sourceID, destID uuid.UUID, amount decimal.Decimal) (*entities.Wallet, *entities.Wallet, error) {
	if sourceID == destID {
		return nil, nil, domainerrors.NewSameWalletError(sourceID)
	}
	if amount.Sign() <= 0 {
		return nil, nil, domainerrors.NewBalanceNegativeError(destID)
	}

	var source, dest *entities.Wallet

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.lockBothWallets(ctx, sourceID, destID); err != nil {
			return err
		}

		// Debit the source. Insufficient funds surface as the commit
		// path's validation error.
		if _, err := u.txUsecase.Create(ctx, &entities.CreateTransactionInput{
			WalletID: sourceID,
			Amount:   amount.Neg(),
		}); err != nil {
			return err
		}

		// Credit the destination.
		if _, err := u.txUsecase.Create(ctx, &entities.CreateTransactionInput{
			WalletID: destID,
			Amount:   amount,
		}); err != nil {
			return err
		}

		var err error
		if source, err = u.walletRepo.GetByID(ctx, sourceID, repositories.ActiveOnly); err != nil {
			return err
		}
		if dest, err = u.walletRepo.GetByID(ctx, destID, repositories.ActiveOnly); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "transfer completed",
		zap.String("source_wallet", sourceID.String()),
		zap.String("destination_wallet", destID.String()),
		zap.String("amount", amount.String()),
	)
	return source, dest, nil
}

// lockBothWallets acquires both wallet row locks in deterministic id order
// so opposing transfers on the same pair cannot deadlock. Missing wallets
// are collected so the error names every offending id.
func (u *WalletUsecase) lockBothWallets(ctx context.Context, sourceID, destID uuid.UUID) error {
	first, second := sourceID, destID
	if strings.Compare(first.String(), second.String()) > 0 {
		first, second = second, first
	}

	var missing []uuid.UUID
	for _, id := range []uuid.UUID{first, second} {
		if _, err := u.walletRepo.GetByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return err
		}
	}
	if len(missing) > 0 {
		return domainerrors.NewWalletNotFoundError(missing...)
	}
	return nil
}
