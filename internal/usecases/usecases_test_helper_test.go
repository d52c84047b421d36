package usecases_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"wallet-ledger.backend/internal/infrastructure/repositories"
	"wallet-ledger.backend/internal/usecases"
)

type ledgerStack struct {
	db            *gorm.DB
	walletRepo    *repositories.WalletRepository
	txRepo        *repositories.TransactionRepository
	txUsecase     *usecases.TransactionUsecase
	walletUsecase *usecases.WalletUsecase
}

func newLedgerStack(t *testing.T) *ledgerStack {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.Exec(`CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		txid TEXT NOT NULL UNIQUE,
		amount NUMERIC(36,18) NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`).Error)

	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)
	txUsecase := usecases.NewTransactionUsecase(txRepo, walletRepo, uow)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, txUsecase, uow)

	return &ledgerStack{
		db:            db,
		walletRepo:    walletRepo,
		txRepo:        txRepo,
		txUsecase:     txUsecase,
		walletUsecase: walletUsecase,
	}
}
