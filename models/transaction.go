package models

import "time"

// PaymentTransaction links a provider checkout session to an order. The
// session id is the join key between the provider's view and local state.
// One order may accumulate several transactions if checkout is retried, but
// only one should ever reach "paid".
type PaymentTransaction struct {
	ID            string            `gorm:"primaryKey" json:"id"`
	SessionID     string            `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID        string            `gorm:"index" json:"user_id"`
	OrderID       string            `gorm:"index" json:"order_id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentStatus PaymentStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Metadata      map[string]string `gorm:"serializer:json" json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
