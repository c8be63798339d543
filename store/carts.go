package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jungle-swimwear/ecommerce-api/models"
)

type Carts interface {
	// GetOrCreate returns the user's cart, creating an empty one on first
	// access.
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, line models.CartItem) error
	UpdateItem(ctx context.Context, userID string, line models.CartItem) error
	RemoveItem(ctx context.Context, userID, productID, size, color string) error
	Clear(ctx context.Context, userID string) error
}

type gormCarts struct {
	db *gorm.DB
}

func (s *gormCarts) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.find(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.create(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *gormCarts) find(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// create inserts an empty cart for the user. Two first accesses can race
// here; the insert is ON CONFLICT DO NOTHING on the user_id unique index
// and whichever row landed is read back, so the loser gets the winner's
// cart instead of a duplicate-key error.
func (s *gormCarts) create(ctx context.Context, userID string) (*models.Cart, error) {
	cart := models.Cart{ID: uuid.NewString(), UserID: userID, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error
	if err != nil {
		return nil, err
	}
	return s.find(ctx, userID)
}

func (s *gormCarts) AddItem(ctx context.Context, userID string, line models.CartItem) error {
	return s.mutate(ctx, userID, func(items []models.CartItem) []models.CartItem {
		return models.MergeLine(items, line)
	})
}

func (s *gormCarts) UpdateItem(ctx context.Context, userID string, line models.CartItem) error {
	return s.mutate(ctx, userID, func(items []models.CartItem) []models.CartItem {
		return models.SetLineQuantity(items, line)
	})
}

func (s *gormCarts) RemoveItem(ctx context.Context, userID, productID, size, color string) error {
	return s.mutate(ctx, userID, func(items []models.CartItem) []models.CartItem {
		return models.RemoveLine(items, productID, size, color)
	})
}

func (s *gormCarts) Clear(ctx context.Context, userID string) error {
	return s.mutate(ctx, userID, func([]models.CartItem) []models.CartItem {
		return nil
	})
}

// mutate applies a read-modify-write on the cart's item list while holding a
// row lock on the cart, so concurrent edits of one user's cart serialize
// instead of losing updates. The cart is created lazily if absent; creation
// happens before the locking transaction so a concurrent first access
// cannot abort it with a duplicate insert.
func (s *gormCarts) mutate(ctx context.Context, userID string, fn func([]models.CartItem) []models.CartItem) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
			return err
		}

		next := fn(items)

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range next {
			next[i].ID = 0
			next[i].CartID = cart.ID
		}
		if len(next) > 0 {
			if err := tx.Create(&next).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("updated_at", time.Now().UTC()).Error
	})
}
