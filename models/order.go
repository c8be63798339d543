package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses
	OrderStatusProcessing OrderStatus = "processing" // Order created, awaiting payment
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Payment confirmed

	// Payment statuses
	PaymentStatusPending PaymentStatus = "pending" // Payment not completed yet
	PaymentStatusPaid    PaymentStatus = "paid"    // Payment completed successfully
	PaymentStatusFailed  PaymentStatus = "failed"  // Payment attempt failed
	PaymentStatusExpired PaymentStatus = "expired" // Checkout session expired unpaid
)

// ShippingAddress is embedded in Order.
type ShippingAddress struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// Order is an immutable snapshot of a cart at creation time. Item prices
// and the total are frozen here and never recomputed from the catalog.
type Order struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	UserID          string          `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	OrderStatus     OrderStatus     `gorm:"type:VARCHAR(20);default:'processing'" json:"order_status"`
	SessionID       string          `gorm:"index" json:"session_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	OrderID     string  `gorm:"index" json:"-"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // unit price at order time
}
