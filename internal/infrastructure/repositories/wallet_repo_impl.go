package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wallet-ledger.backend/internal/domain/entities"
	domainerrors "wallet-ledger.backend/internal/domain/errors"
	domainRepos "wallet-ledger.backend/internal/domain/repositories"
	"wallet-ledger.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	now := time.Now()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	m := &models.Wallet{
		ID:        wallet.ID,
		Label:     wallet.Label,
		IsDeleted: false,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// GetByID gets a wallet by ID. ActiveOnly mode treats soft-deleted wallets
// as absent.
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID, mode domainRepos.QueryMode) (*entities.Wallet, error) {
	var m models.Wallet
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

// GetByIDForUpdate gets a non-deleted wallet by ID with a row-level lock.
// Must run inside a UnitOfWork scope; the lock is held until that
// transaction commits or rolls back. SQLite serializes writers at the
// database level, so the locking clause is applied only on PostgreSQL.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db).WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists non-deleted wallets with optional label filtering and pagination
func (r *WalletRepository) List(ctx context.Context, labelFilter string, limit, offset int) ([]*entities.Wallet, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).Where("is_deleted = ?", false)
	if labelFilter != "" {
		db = db.Where("label LIKE ?", "%"+labelFilter+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		db = db.Limit(limit).Offset(offset)
	}

	var ms []models.Wallet
	if err := db.Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	wallets := make([]*entities.Wallet, 0, len(ms))
	for i := range ms {
		wallets = append(wallets, r.toEntity(&ms[i]))
	}
	return wallets, total, nil
}

// Update updates a wallet's label
func (r *WalletRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	wallet.UpdatedAt = time.Now()
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ? AND is_deleted = ?", wallet.ID, false).
		Updates(map[string]interface{}{
			"label":      wallet.Label,
			"updated_at": wallet.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete flags a wallet as deleted. Deleting an already-deleted wallet
// fails so the caller can surface the repeated delete as a validation error.
func (r *WalletRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var m models.Wallet
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	if m.IsDeleted {
		return domainerrors.ErrAlreadyDeleted
	}

	return db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		}).Error
}

// Balance computes the wallet's derived balance as the sum of its
// non-deleted transaction amounts. The read goes through the context
// transaction when present, so a locked commit path sees a consistent
// snapshot rather than a stale cached value.
func (r *WalletRepository) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db)

	var raw *string
	err := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("wallet_id = ? AND is_deleted = ?", id, false).
		Select("SUM(amount)").
		Row().Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

func (r *WalletRepository) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		Label:     m.Label,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		IsDeleted: m.IsDeleted,
	}
}
