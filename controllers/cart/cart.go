package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (in CartItemInput) line() models.CartItem {
	return models.CartItem{
		ProductID: in.ProductID,
		Size:      in.Size,
		Color:     in.Color,
		Quantity:  in.Quantity,
	}
}

// GET /cart
func GetCart(carts store.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := carts.GetOrCreate(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart/add
func AddItem(carts store.Carts, products store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := products.FindByID(c.Request.Context(), input.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		if err := carts.AddItem(c.Request.Context(), userID, input.line()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
	}
}

// POST /cart/update
//
// A line that does not exist is left alone; the call still succeeds, so
// callers must not assume the item was in the cart.
func UpdateItem(carts store.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := carts.UpdateItem(c.Request.Context(), userID, input.line()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// DELETE /cart/remove/:product_id/:size/:color
//
// Idempotent: removing a line that was never added is a no-op.
func RemoveItem(carts store.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		err := carts.RemoveItem(c.Request.Context(), userID,
			c.Param("product_id"), c.Param("size"), c.Param("color"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// DELETE /cart/clear
func ClearCart(carts store.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := carts.Clear(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
