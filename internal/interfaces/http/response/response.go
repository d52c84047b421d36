package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "wallet-ledger.backend/internal/domain/errors"
	"wallet-ledger.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error translates a domain error into an HTTP response. This is the single
// translation point: domain code returns typed errors and never deals with
// status codes. Unrecognized errors are logged with full detail and
// surfaced as an opaque internal error.
func Error(c *gin.Context, err error) {
	var (
		walletNotFound *domainerrors.WalletNotFoundError
		txNotFound     *domainerrors.TransactionNotFoundError
		sameWallet     *domainerrors.SameWalletError
		balanceNeg     *domainerrors.BalanceNegativeError
		validation     *domainerrors.ValidationError
	)

	switch {
	case errors.As(err, &walletNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":        "wallets_not_found",
			"message":     walletNotFound.Error(),
			"missing_ids": walletNotFound.MissingIDs,
		})
	case errors.As(err, &txNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":        "transactions_not_found",
			"message":     txNotFound.Error(),
			"missing_ids": txNotFound.MissingIDs,
		})
	case errors.As(err, &sameWallet):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "same_wallet_transfer",
			"message": sameWallet.Error(),
		})
	case errors.As(err, &balanceNeg):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "wallet_balance_negative",
			"message": balanceNeg.Error(),
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "validation_error",
			"message": validation.Error(),
		})
	default:
		logger.Error(c.Request.Context(), "unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "Internal server error.",
		})
	}
}

// BadRequest sends a 400 with a validation error body, for malformed input
// rejected before it reaches the domain layer
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "validation_error",
		"message": message,
	})
}
