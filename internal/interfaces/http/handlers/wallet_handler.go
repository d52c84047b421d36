package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wallet-ledger.backend/internal/domain/entities"
	"wallet-ledger.backend/internal/domain/repositories"
	"wallet-ledger.backend/internal/interfaces/http/middleware"
	"wallet-ledger.backend/internal/interfaces/http/response"
	"wallet-ledger.backend/internal/usecases"
	"wallet-ledger.backend/pkg/utils"
)

type walletService interface {
	Create(ctx context.Context, input *entities.CreateWalletInput) (*entities.Wallet, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateWalletInput) (*entities.Wallet, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID, mode repositories.QueryMode) (*entities.Wallet, error)
	List(ctx context.Context, labelFilter string, limit, offset int) ([]*entities.Wallet, int64, error)
	GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	ApplyCashFlow(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*entities.Transaction, error)
	Transfer(ctx context.Context, sourceID, destID uuid.UUID, amount decimal.Decimal) (*entities.Wallet, *entities.Wallet, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// CreateWallet creates a wallet
// POST /api/v1/wallets
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var input entities.CreateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	wallet, err := h.walletUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"wallet": wallet})
}

// ListWallets lists non-deleted wallets
// GET /api/v1/wallets?page=&limit=&label=
func (h *WalletHandler) ListWallets(c *gin.Context) {
	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	params = utils.GetPaginationParams(params.Page, params.Limit)

	wallets, total, err := h.walletUsecase.List(c.Request.Context(), c.Query("label"), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if wallets == nil {
		wallets = []*entities.Wallet{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"wallets":    wallets,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// GetWallet gets a wallet by id
// GET /api/v1/wallets/:id
func (h *WalletHandler) GetWallet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	mode := repositories.ActiveOnly
	if c.Query("include_deleted") == "true" {
		mode = repositories.IncludeDeleted
	}

	wallet, err := h.walletUsecase.Get(c.Request.Context(), id, mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// UpdateWallet updates a wallet's label
// PATCH /api/v1/wallets/:id
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input entities.UpdateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	wallet, err := h.walletUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// DeleteWallet soft-deletes a wallet
// DELETE /api/v1/wallets/:id
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.walletUsecase.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Wallet deleted"})
}

// GetBalance returns the wallet's derived balance
// GET /api/v1/wallets/:id/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	balance, err := h.walletUsecase.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"walletId": id,
		"balance":  balance,
	})
}

// Deposit applies a cash flow (deposit or withdrawal) to a wallet
// POST /api/v1/wallets/:id/deposit
func (h *WalletHandler) Deposit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input entities.CashFlowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tx, err := h.walletUsecase.ApplyCashFlow(c.Request.Context(), id, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountTransactionCommitted()
	response.Success(c, http.StatusOK, gin.H{
		"message":     "Wallet has been deposited",
		"transaction": tx,
	})
}

// Transfer moves funds between two wallets atomically
// POST /api/v1/wallets/transfer
func (h *WalletHandler) Transfer(c *gin.Context) {
	var input entities.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	source, dest, err := h.walletUsecase.Transfer(c.Request.Context(), input.SourceWallet, input.DestinationWallet, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountTransactionCommitted()
	response.Success(c, http.StatusOK, gin.H{
		"message": "Transfer has been completed",
		"wallets": []*entities.Wallet{source, dest},
	})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
