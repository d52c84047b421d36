package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wallet-ledger.backend/internal/domain/entities"
	domainerrors "wallet-ledger.backend/internal/domain/errors"
	domainRepos "wallet-ledger.backend/internal/domain/repositories"
	"wallet-ledger.backend/internal/infrastructure/models"
)

// TransactionRepository implements transaction data operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a transaction. A txid uniqueness conflict detected at the
// storage layer is reported as ErrAlreadyExists for the commit path to
// translate.
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	m := &models.Transaction{
		ID:        tx.ID,
		WalletID:  tx.WalletID,
		Txid:      tx.Txid,
		Amount:    tx.Amount,
		IsDeleted: false,
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a transaction by ID. ActiveOnly mode treats soft-deleted
// transactions as absent.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID, mode domainRepos.QueryMode) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id)
	if mode == domainRepos.ActiveOnly {
		db = db.Where("is_deleted = ?", false)
	}
	if err := db.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ExistsByTxid reports whether any transaction, soft-deleted or not,
// carries the given txid.
func (r *TransactionRepository) ExistsByTxid(ctx context.Context, txid string) (bool, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("txid = ?", txid).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List lists non-deleted transactions, newest first, optionally restricted
// to one wallet
func (r *TransactionRepository) List(ctx context.Context, walletID *uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).Where("is_deleted = ?", false)
	if walletID != nil {
		db = db.Where("wallet_id = ?", *walletID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		db = db.Limit(limit).Offset(offset)
	}

	var ms []models.Transaction
	if err := db.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, r.toEntity(&ms[i]))
	}
	return txs, total, nil
}

// UpdateAmount persists an amended amount as one atomic update
func (r *TransactionRepository) UpdateAmount(ctx context.Context, tx *entities.Transaction) error {
	tx.UpdatedAt = time.Now()
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND is_deleted = ?", tx.ID, false).
		Updates(map[string]interface{}{
			"amount":     tx.Amount,
			"updated_at": tx.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete flags a transaction as deleted, which removes it from balance
// computation and default listings while keeping the row in storage.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var m models.Transaction
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	if m.IsDeleted {
		return domainerrors.ErrAlreadyDeleted
	}

	return db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		}).Error
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:        m.ID,
		WalletID:  m.WalletID,
		Txid:      m.Txid,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		IsDeleted: m.IsDeleted,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
