package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jungle-swimwear/ecommerce-api/models"
)

type Orders interface {
	Create(ctx context.Context, order *models.Order) error
	// FindForUser collapses existence and ownership: an order belonging to
	// another user is reported as ErrNotFound.
	FindForUser(ctx context.Context, orderID, userID string) (*models.Order, error)
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	SetSession(ctx context.Context, orderID, sessionID string) error
	// ConfirmPaid marks the order paid/confirmed and empties the user's cart
	// in one transaction, so no crash can leave a paid order with a stale
	// cart.
	ConfirmPaid(ctx context.Context, orderID, userID string) error
}

type gormOrders struct {
	db *gorm.DB
}

func (s *gormOrders) Create(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *gormOrders) FindForUser(ctx context.Context, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *gormOrders) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *gormOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *gormOrders) SetSession(ctx context.Context, orderID, sessionID string) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("session_id", sessionID).Error
}

func (s *gormOrders) ConfirmPaid(ctx context.Context, orderID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"order_status":   models.OrderStatusConfirmed,
			}).Error
		if err != nil {
			return err
		}

		var cart models.Cart
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("updated_at", time.Now().UTC()).Error
	})
}
