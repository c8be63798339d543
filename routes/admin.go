package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/jungle-swimwear/ecommerce-api/controllers/product"
	"github.com/jungle-swimwear/ecommerce-api/middleware"
)

func SetupAdminRoutes(r *gin.Engine, app *App) {
	admin := r.Group("/admin", middleware.ValidateAPIKey)
	{
		admin.GET("/orders", app.Orders.AdminListHandler())
		admin.GET("/orders/ws", app.Feed.Handler())
		admin.POST("/products", productControllers.CreateProduct(app.Store.Products))
		admin.GET("/products/export", productControllers.ExportProductsToExcel(app.Store.Products))
	}
}
