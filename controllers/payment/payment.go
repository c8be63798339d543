package paymentControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	orderControllers "github.com/jungle-swimwear/ecommerce-api/controllers/order"
	"github.com/jungle-swimwear/ecommerce-api/metrics"
	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/payments"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrAlreadyPaid         = errors.New("order already paid")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
)

const currency = "usd"

// Service orchestrates local state around the payment provider's
// asynchronous confirmation: session creation, status polling and webhook
// handling all converge on one confirmation transition.
type Service struct {
	Orders       store.Orders
	Transactions store.Transactions
	Users        store.Users
	Provider     payments.Provider
	Feed         *orderControllers.Feed

	// Concurrent polls for the same session share one provider round trip.
	poll singleflight.Group
}

// CheckoutResult is what the client needs to redirect to the provider.
type CheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CreateCheckout opens a provider checkout session for an order and records
// a pending transaction keyed by the returned session id. Nothing is
// persisted when the provider call fails.
func (s *Service) CreateCheckout(ctx context.Context, orderID, userID, originURL string) (*CheckoutResult, error) {
	order, err := s.Orders.FindForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"order_id":   order.ID,
		"user_id":    userID,
		"user_email": user.Email,
	}
	session, err := s.Provider.CreateSession(ctx, payments.SessionRequest{
		Amount:     order.TotalAmount,
		Currency:   currency,
		SuccessURL: originURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  originURL + "/checkout/cancel",
		Metadata:   metadata,
	})
	if err != nil {
		if errors.Is(err, payments.ErrUnavailable) {
			return nil, ErrProviderUnavailable
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	tx := models.PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     session.ID,
		UserID:        userID,
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		Currency:      currency,
		PaymentStatus: models.PaymentStatusPending,
		Metadata:      metadata,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := s.Transactions.Create(ctx, &tx); err != nil {
		return nil, err
	}
	// Last writer wins on the order's session pointer; retried checkouts
	// each leave their own ledger row behind.
	if err := s.Orders.SetSession(ctx, order.ID, session.ID); err != nil {
		return nil, err
	}

	metrics.CheckoutSessions.Inc()
	return &CheckoutResult{URL: session.URL, SessionID: session.ID}, nil
}

// StatusResult is the poll response.
type StatusResult struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}

// PollStatus reconciles a transaction against the provider's live status.
// A locally-paid transaction short-circuits without a provider call; a
// provider timeout degrades to the last known local status.
func (s *Service) PollStatus(ctx context.Context, sessionID string) (*StatusResult, error) {
	tx, err := s.Transactions.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if tx.PaymentStatus == models.PaymentStatusPaid {
		return &StatusResult{Status: payments.StatusPaid, OrderID: tx.OrderID}, nil
	}

	v, err, _ := s.poll.Do(sessionID, func() (interface{}, error) {
		// The result is shared across pollers, so the provider call must
		// outlive the caller that happened to initiate it. The provider
		// client carries its own timeout.
		return s.Provider.GetStatus(context.WithoutCancel(ctx), sessionID)
	})
	if err != nil {
		if errors.Is(err, payments.ErrUnavailable) {
			return &StatusResult{Status: string(tx.PaymentStatus), OrderID: tx.OrderID}, nil
		}
		return nil, err
	}
	status := v.(string)

	if status == payments.StatusPaid {
		if err := s.confirm(ctx, tx); err != nil {
			return nil, err
		}
	}
	return &StatusResult{Status: status, OrderID: tx.OrderID}, nil
}

// HandleWebhook verifies and applies a provider notification. Unknown
// sessions and non-paid statuses are accepted silently: the provider sends
// many event types and only paid checkouts matter here.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.Provider.VerifyWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			metrics.WebhookEvents.WithLabelValues("invalid_signature").Inc()
			return err
		}
		return err
	}

	if event.Status != payments.StatusPaid {
		metrics.WebhookEvents.WithLabelValues("ignored").Inc()
		return nil
	}

	tx, err := s.Transactions.FindBySession(ctx, event.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.WebhookEvents.WithLabelValues("unknown_session").Inc()
			return nil
		}
		return err
	}
	if tx.PaymentStatus == models.PaymentStatusPaid {
		metrics.WebhookEvents.WithLabelValues("duplicate").Inc()
		return nil
	}

	metrics.WebhookEvents.WithLabelValues("paid").Inc()
	return s.confirm(ctx, tx)
}

// confirm is the confirmation transition shared by poll and webhook. The
// conditional update on the ledger is the gate: only the caller that
// actually flips the transaction to paid goes on to apply the order and
// cart effects, so a webhook racing a poll applies the side effects exactly
// once. The order update and cart clear are one transaction, so the only
// partial state a crash can leave is a paid ledger row with an unpaid
// order, which Reconcile finishes.
func (s *Service) confirm(ctx context.Context, tx *models.PaymentTransaction) error {
	won, err := s.Transactions.MarkPaid(ctx, tx.SessionID)
	if err != nil {
		return err
	}
	if !won {
		// Another poll or webhook already handled this session.
		return nil
	}

	if err := s.Orders.ConfirmPaid(ctx, tx.OrderID, tx.UserID); err != nil {
		return err
	}

	metrics.PaymentsConfirmed.Inc()
	log.Printf("payment confirmed: session=%s order=%s", tx.SessionID, tx.OrderID)

	if order, err := s.Orders.FindForUser(ctx, tx.OrderID, tx.UserID); err == nil {
		s.Feed.Broadcast(orderControllers.FeedEvent{Type: "order_confirmed", Order: order})
	}
	return nil
}

// Reconcile finishes confirmations that were interrupted between the ledger
// write and the order/cart transaction (a crash leaves a paid transaction
// with an unpaid order). It is run periodically from main; ConfirmPaid is
// safe to repeat, so overlapping with a live confirmation is harmless.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	txs, err := s.Transactions.ListUnreconciled(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for i := range txs {
		tx := &txs[i]
		order, err := s.Orders.FindForUser(ctx, tx.OrderID, tx.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return repaired, err
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			continue
		}

		if err := s.Orders.ConfirmPaid(ctx, tx.OrderID, tx.UserID); err != nil {
			return repaired, err
		}
		repaired++
		log.Printf("payment reconciled: session=%s order=%s", tx.SessionID, tx.OrderID)

		order.PaymentStatus = models.PaymentStatusPaid
		order.OrderStatus = models.OrderStatusConfirmed
		s.Feed.Broadcast(orderControllers.FeedEvent{Type: "order_confirmed", Order: order})
	}
	return repaired, nil
}
