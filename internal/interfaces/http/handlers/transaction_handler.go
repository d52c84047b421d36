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

type transactionService interface {
	Create(ctx context.Context, input *entities.CreateTransactionInput) (*entities.Transaction, error)
	Amend(ctx context.Context, id uuid.UUID, newAmount decimal.Decimal) (*entities.Transaction, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID, mode repositories.QueryMode) (*entities.Transaction, error)
	List(ctx context.Context, walletID *uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
}

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	txUsecase transactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{txUsecase: txUsecase}
}

// CreateTransaction creates a transaction through the commit path
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var input entities.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tx, err := h.txUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountTransactionCommitted()
	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// ListTransactions lists non-deleted transactions
// GET /api/v1/transactions?page=&limit=&wallet_id=
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	params = utils.GetPaginationParams(params.Page, params.Limit)

	var walletID *uuid.UUID
	if raw := c.Query("wallet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid wallet_id")
			return
		}
		walletID = &id
	}

	txs, total, err := h.txUsecase.List(c.Request.Context(), walletID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	if txs == nil {
		txs = []*entities.Transaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": txs,
		"pagination":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// GetTransaction gets a transaction by id
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	mode := repositories.ActiveOnly
	if c.Query("include_deleted") == "true" {
		mode = repositories.IncludeDeleted
	}

	tx, err := h.txUsecase.Get(c.Request.Context(), id, mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": tx})
}

// AmendTransaction amends a transaction's amount
// PATCH /api/v1/transactions/:id
func (h *TransactionHandler) AmendTransaction(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input entities.AmendTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tx, err := h.txUsecase.Amend(c.Request.Context(), id, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction soft-deletes a transaction
// DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.txUsecase.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Transaction deleted"})
}
