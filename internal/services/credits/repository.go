package credits

import (
	"context"
	"errors"

	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAccountNotFound indicates the user has no credit account
var ErrAccountNotFound = errors.New("credit account not found")

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *database.DB
}

// NewRepository creates a new credit repository
func NewRepository(db *database.DB) *GormRepository {
	return &GormRepository{db: db}
}

// DebitIfSufficient applies a single conditional UPDATE so the balance check
// and the debit happen in one statement. Zero rows affected means the balance
// was insufficient (or the account does not exist).
func (r *GormRepository) DebitIfSufficient(ctx context.Context, userID string, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CreditAccount{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetBalance returns the current balance for a user
func (r *GormRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var account models.CreditAccount
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// Credit adds amount to the user's balance, creating the account if needed
func (r *GormRepository) Credit(ctx context.Context, userID string, amount int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"balance": gorm.Expr("balance + ?", amount)}),
		}).
		Create(&models.CreditAccount{UserID: userID, Balance: amount}).Error
}
