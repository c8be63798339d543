package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/jungle-swimwear/ecommerce-api/controllers/product"
)

func SetupProductRoutes(r *gin.Engine, app *App) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.ListProducts(app.Store.Products))
		products.GET("/:id", productControllers.GetProduct(app.Store.Products))
	}
}
