package payments

import (
	"context"
	"errors"
)

// Payment statuses as reported by the provider.
const (
	StatusPaid    = "paid"
	StatusUnpaid  = "unpaid"
	StatusExpired = "expired"
)

var (
	// ErrUnavailable covers transport failures and timeouts talking to the
	// provider.
	ErrUnavailable = errors.New("payment provider unavailable")
	// ErrInvalidSignature means webhook verification failed.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// SessionRequest describes the checkout session to create.
type SessionRequest struct {
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the provider-side checkout object the customer is redirected to.
type Session struct {
	ID  string
	URL string
}

// Event is a parsed, signature-verified webhook notification.
type Event struct {
	Type      string
	SessionID string
	Status    string
}

// Provider is the payment gateway the order workflow talks to. Charge
// processing and card handling live entirely on the provider's side; this
// interface only creates sessions and observes their payment status.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetStatus(ctx context.Context, sessionID string) (string, error)
	VerifyWebhook(payload []byte, signatureHeader string) (*Event, error)
}
