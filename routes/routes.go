package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/jungle-swimwear/ecommerce-api/controllers/order"
	paymentControllers "github.com/jungle-swimwear/ecommerce-api/controllers/payment"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

// App bundles the wired components the route groups hand to their handlers.
type App struct {
	Store    *store.Store
	Orders   *orderControllers.Service
	Payments *paymentControllers.Service
	Feed     *orderControllers.Feed
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, app *App) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, app)

	// Public catalog routes
	SetupProductRoutes(r, app)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, app)

	// Order + checkout routes (JWT-protected)
	SetupOrderRoutes(r, app)

	// Provider webhook + metrics (public)
	SetupPaymentRoutes(r, app)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, app)
}
