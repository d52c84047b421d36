package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"wallet-ledger.backend/internal/domain/entities"
	domainerrors "wallet-ledger.backend/internal/domain/errors"
	domainRepos "wallet-ledger.backend/internal/domain/repositories"
)

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	w := seedWallet(t, db, "Holder")
	tx := seedTransaction(t, db, w.ID, "42.123456789012345678")

	got, err := repo.GetByID(ctx, tx.ID, domainRepos.ActiveOnly)
	require.NoError(t, err)
	require.Equal(t, tx.Txid, got.Txid)
	require.Equal(t, w.ID, got.WalletID)
	require.True(t, got.Amount.Equal(tx.Amount), "got %s", got.Amount)
}

func TestTransactionRepository_TxidUniqueAcrossDeleted(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	w := seedWallet(t, db, "Holder")
	tx := seedTransaction(t, db, w.ID, "5")
	require.NoError(t, repo.SoftDelete(ctx, tx.ID))

	// Soft-deleted rows still occupy their txid.
	exists, err := repo.ExistsByTxid(ctx, tx.Txid)
	require.NoError(t, err)
	require.True(t, exists)

	dup := &entities.Transaction{WalletID: w.ID, Txid: tx.Txid, Amount: decimal.New(1, 0)}
	require.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)

	exists, err = repo.ExistsByTxid(ctx, "never-used")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestTransactionRepository_QueryModes(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	w := seedWallet(t, db, "Holder")
	tx := seedTransaction(t, db, w.ID, "7")
	require.NoError(t, repo.SoftDelete(ctx, tx.ID))

	_, err := repo.GetByID(ctx, tx.ID, domainRepos.ActiveOnly)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := repo.GetByID(ctx, tx.ID, domainRepos.IncludeDeleted)
	require.NoError(t, err)
	require.True(t, got.IsDeleted)

	_, err = repo.GetByID(ctx, uuid.New(), domainRepos.IncludeDeleted)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransactionRepository_SoftDeleteTwice(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	w := seedWallet(t, db, "Holder")
	tx := seedTransaction(t, db, w.ID, "7")

	require.NoError(t, repo.SoftDelete(ctx, tx.ID))
	require.ErrorIs(t, repo.SoftDelete(ctx, tx.ID), domainerrors.ErrAlreadyDeleted)
	require.ErrorIs(t, repo.SoftDelete(ctx, uuid.New()), domainerrors.ErrNotFound)
}

func TestTransactionRepository_UpdateAmount(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	w := seedWallet(t, db, "Holder")
	tx := seedTransaction(t, db, w.ID, "10")

	tx.Amount = decimal.RequireFromString("25.75")
	require.NoError(t, repo.UpdateAmount(ctx, tx))

	got, err := repo.GetByID(ctx, tx.ID, domainRepos.ActiveOnly)
	require.NoError(t, err)
	require.True(t, got.Amount.Equal(decimal.RequireFromString("25.75")))

	ghost := &entities.Transaction{ID: uuid.New(), Amount: decimal.New(1, 0)}
	require.ErrorIs(t, repo.UpdateAmount(ctx, ghost), domainerrors.ErrNotFound)
}

func TestTransactionRepository_List(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	w1 := seedWallet(t, db, "One")
	w2 := seedWallet(t, db, "Two")
	seedTransaction(t, db, w1.ID, "1")
	seedTransaction(t, db, w1.ID, "2")
	seedTransaction(t, db, w2.ID, "3")
	deleted := seedTransaction(t, db, w1.ID, "4")
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	all, total, err := repo.List(ctx, nil, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, all, 3)

	byWallet, total, err := repo.List(ctx, &w1.ID, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byWallet, 2)

	paged, total, err := repo.List(ctx, nil, 2, 0)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, paged, 2)
}
