package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_created_total",
		Help: "Orders created from carts.",
	})
	CheckoutSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_checkout_sessions_total",
		Help: "Checkout sessions opened with the payment provider.",
	})
	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_payments_confirmed_total",
		Help: "Confirmation transitions applied (exactly once per session).",
	})
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_webhook_events_total",
		Help: "Verified provider webhook events by outcome.",
	}, []string{"outcome"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
