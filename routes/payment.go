package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jungle-swimwear/ecommerce-api/metrics"
)

func SetupPaymentRoutes(r *gin.Engine, app *App) {
	// Webhook endpoint: raw body + Stripe-Signature header; signature
	// verification happens inside the handler.
	r.POST("/webhook/stripe", app.Payments.WebhookHandler())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
