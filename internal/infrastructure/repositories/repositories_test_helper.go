package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"wallet-ledger.backend/internal/domain/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		txid TEXT NOT NULL UNIQUE,
		amount NUMERIC(36,18) NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE INDEX idx_transactions_wallet_amount ON transactions (wallet_id, amount);`)
}

func seedWallet(t *testing.T, db *gorm.DB, label string) *entities.Wallet {
	t.Helper()
	repo := NewWalletRepository(db)
	w := &entities.Wallet{Label: label}
	require.NoError(t, repo.Create(context.Background(), w))
	return w
}

func seedTransaction(t *testing.T, db *gorm.DB, walletID uuid.UUID, amount string) *entities.Transaction {
	t.Helper()
	repo := NewTransactionRepository(db)
	tx := &entities.Transaction{
		WalletID: walletID,
		Txid:     uuid.New().String(),
		Amount:   decimal.RequireFromString(amount),
	}
	require.NoError(t, repo.Create(context.Background(), tx))
	return tx
}
