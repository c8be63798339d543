package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/jungle-swimwear/ecommerce-api/controllers/auth"
	"github.com/jungle-swimwear/ecommerce-api/middleware"
)

func SetupAuthRoutes(r *gin.Engine, app *App) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authControllers.Register(app.Store.Users, app.Store.Carts))
		auth.POST("/login", authControllers.Login(app.Store.Users))
		auth.GET("/me", middleware.ValidateToken, authControllers.Me(app.Store.Users))
	}
}
