package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/jungle-swimwear/ecommerce-api/controllers/cart"
	"github.com/jungle-swimwear/ecommerce-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, app *App) {
	cart := r.Group("/cart", middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCart(app.Store.Carts))
		cart.POST("/add", cartControllers.AddItem(app.Store.Carts, app.Store.Products))
		cart.POST("/update", cartControllers.UpdateItem(app.Store.Carts))
		cart.DELETE("/remove/:product_id/:size/:color", cartControllers.RemoveItem(app.Store.Carts))
		cart.DELETE("/clear", cartControllers.ClearCart(app.Store.Carts))
	}
}
