package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrBadRequest      = errors.New("bad request")
	ErrAlreadyDeleted  = errors.New("object is already deleted")
	ErrBalanceNegative = errors.New("wallet balance cannot be negative")
)

// ValidationError is a generic business-rule violation: a missing wallet
// reference, a txid collision, a balance that would go negative at the
// commit path, or a repeated soft delete.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "Validation error occurred."
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// WalletNotFoundError is raised when one or more wallet ids do not resolve
// to a non-deleted wallet. It carries the offending ids.
type WalletNotFoundError struct {
	MissingIDs []uuid.UUID
}

func (e *WalletNotFoundError) Error() string {
	if len(e.MissingIDs) == 0 {
		return "Wallet(s) not found."
	}
	return fmt.Sprintf("Wallet(s) not found: %s", joinIDs(e.MissingIDs))
}

func (e *WalletNotFoundError) Unwrap() error { return ErrNotFound }

// NewWalletNotFoundError creates a wallet not-found error carrying the missing ids
func NewWalletNotFoundError(missingIDs ...uuid.UUID) *WalletNotFoundError {
	return &WalletNotFoundError{MissingIDs: missingIDs}
}

// TransactionNotFoundError is the transaction analogue of WalletNotFoundError
type TransactionNotFoundError struct {
	MissingIDs []uuid.UUID
}

func (e *TransactionNotFoundError) Error() string {
	if len(e.MissingIDs) == 0 {
		return "Transaction(s) not found."
	}
	return fmt.Sprintf("Transaction(s) not found: %s", joinIDs(e.MissingIDs))
}

func (e *TransactionNotFoundError) Unwrap() error { return ErrNotFound }

// NewTransactionNotFoundError creates a transaction not-found error carrying the missing ids
func NewTransactionNotFoundError(missingIDs ...uuid.UUID) *TransactionNotFoundError {
	return &TransactionNotFoundError{MissingIDs: missingIDs}
}

// SameWalletError is raised when a transfer's source and destination resolve
// to the same wallet. Detected before any lookup or mutation.
type SameWalletError struct {
	WalletID uuid.UUID
}

func (e *SameWalletError) Error() string {
	return "Source and destination wallets must differ."
}

func (e *SameWalletError) Unwrap() error { return ErrBadRequest }

// NewSameWalletError creates a same-wallet transfer error
func NewSameWalletError(walletID uuid.UUID) *SameWalletError {
	return &SameWalletError{WalletID: walletID}
}

// BalanceNegativeError is raised by the orchestrator's pre-check when a
// cash flow or transfer would drive a wallet balance negative. The commit
// path reports the same condition as a ValidationError instead.
type BalanceNegativeError struct {
	WalletID uuid.UUID
}

func (e *BalanceNegativeError) Error() string {
	return "Wallet balance cannot be negative."
}

func (e *BalanceNegativeError) Unwrap() error { return ErrBalanceNegative }

// NewBalanceNegativeError creates a balance pre-check error
func NewBalanceNegativeError(walletID uuid.UUID) *BalanceNegativeError {
	return &BalanceNegativeError{WalletID: walletID}
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}
