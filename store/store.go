package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jungle-swimwear/ecommerce-api/models"
)

// ErrNotFound is returned by lookups for missing records.
var ErrNotFound = errors.New("record not found")

// Store owns the database handle and exposes one repository per entity.
// It is constructed once in main and passed to the components that need it;
// nothing in the codebase reaches for a global handle.
type Store struct {
	DB *gorm.DB

	Users        Users
	Products     Products
	Carts        Carts
	Orders       Orders
	Transactions Transactions
}

// Open connects to Postgres, runs migrations and wires the repositories.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentTransaction{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{
		DB:           db,
		Users:        &gormUsers{db: db},
		Products:     &gormProducts{db: db},
		Carts:        &gormCarts{db: db},
		Orders:       &gormOrders{db: db},
		Transactions: &gormTransactions{db: db},
	}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
