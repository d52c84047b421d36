package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	infrarepos "wallet-ledger.backend/internal/infrastructure/repositories"
	"wallet-ledger.backend/internal/interfaces/http/handlers"
	"wallet-ledger.backend/internal/usecases"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires real repositories over in-memory sqlite behind the
// same routes the server registers, minus the cross-cutting middleware.
func newTestRouter(t *testing.T) *gin.Engine {
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

	walletRepo := infrarepos.NewWalletRepository(db)
	txRepo := infrarepos.NewTransactionRepository(db)
	uow := infrarepos.NewUnitOfWork(db)
	txUsecase := usecases.NewTransactionUsecase(txRepo, walletRepo, uow)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, txUsecase, uow)

	walletHandler := handlers.NewWalletHandler(walletUsecase)
	txHandler := handlers.NewTransactionHandler(txUsecase)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		wallets := v1.Group("/wallets")
		{
			wallets.POST("", walletHandler.CreateWallet)
			wallets.GET("", walletHandler.ListWallets)
			wallets.POST("/transfer", walletHandler.Transfer)
			wallets.GET("/:id", walletHandler.GetWallet)
			wallets.PATCH("/:id", walletHandler.UpdateWallet)
			wallets.DELETE("/:id", walletHandler.DeleteWallet)
			wallets.GET("/:id/balance", walletHandler.GetBalance)
			wallets.POST("/:id/deposit", walletHandler.Deposit)
		}
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", txHandler.CreateTransaction)
			transactions.GET("", txHandler.ListTransactions)
			transactions.GET("/:id", txHandler.GetTransaction)
			transactions.PATCH("/:id", txHandler.AmendTransaction)
			transactions.DELETE("/:id", txHandler.DeleteTransaction)
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func createWalletHTTP(t *testing.T, r *gin.Engine, label string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets", gin.H{"label": label})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	wallet := body["wallet"].(map[string]interface{})
	return wallet["id"].(string)
}
