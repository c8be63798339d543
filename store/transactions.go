package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jungle-swimwear/ecommerce-api/models"
)

type Transactions interface {
	Create(ctx context.Context, tx *models.PaymentTransaction) error
	FindBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	// MarkPaid flips the transaction to paid if and only if it is not paid
	// yet. The boolean result is the at-most-once gate for the confirmation
	// transition: false means another caller already won the race.
	MarkPaid(ctx context.Context, sessionID string) (bool, error)
	// ListUnreconciled returns paid transactions whose order never reached
	// paid, i.e. confirmations interrupted between the ledger write and the
	// order write.
	ListUnreconciled(ctx context.Context) ([]models.PaymentTransaction, error)
}

type gormTransactions struct {
	db *gorm.DB
}

func (s *gormTransactions) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	return s.db.WithContext(ctx).Create(tx).Error
}

func (s *gormTransactions) FindBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&tx).Error; err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

func (s *gormTransactions) MarkPaid(ctx context.Context, sessionID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.PaymentTransaction{}).
		Where("session_id = ? AND payment_status <> ?", sessionID, models.PaymentStatusPaid).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormTransactions) ListUnreconciled(ctx context.Context) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := s.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = payment_transactions.order_id").
		Where("payment_transactions.payment_status = ? AND orders.payment_status <> ?",
			models.PaymentStatusPaid, models.PaymentStatusPaid).
		Find(&txs).Error
	return txs, err
}
