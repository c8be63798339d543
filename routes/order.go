package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jungle-swimwear/ecommerce-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, app *App) {
	orders := r.Group("/orders", middleware.ValidateToken)
	{
		orders.POST("", app.Orders.CreateHandler())
		orders.GET("", app.Orders.ListHandler())
		orders.GET("/:id", app.Orders.GetHandler())
		orders.POST("/:id/checkout", app.Payments.CheckoutHandler())
	}

	payments := r.Group("/payments", middleware.ValidateToken)
	{
		payments.GET("/:session_id/status", app.Payments.StatusHandler())
	}
}
