package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CheckoutInput struct {
	OriginURL string `json:"origin_url" binding:"required,url"`
}

// POST /orders/:id/checkout
func (s *Service) CheckoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := s.CreateCheckout(c.Request.Context(), c.Param("id"), userID, input.OriginURL)
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, ErrAlreadyPaid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order already paid"})
		case errors.Is(err, ErrProviderUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		default:
			c.JSON(http.StatusOK, result)
		}
	}
}

// GET /payments/:session_id/status
func (s *Service) StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.PollStatus(c.Request.Context(), c.Param("session_id"))
		switch {
		case errors.Is(err, ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		default:
			c.JSON(http.StatusOK, result)
		}
	}
}

// POST /webhook/stripe
//
// Returns 200 on any verified event, relevant or not; the provider owns
// delivery retries and only needs to know verification succeeded.
func (s *Service) WebhookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		err = s.HandleWebhook(c.Request.Context(), body, c.GetHeader("Stripe-Signature"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}
