package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

type ProductInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Images      []string       `json:"images"`
	Category    string         `json:"category" binding:"required"`
	Sizes       []string       `json:"sizes"`
	Colors      []string       `json:"colors"`
	Stock       map[string]int `json:"stock"`
	Featured    bool           `json:"featured"`
}

// GET /products?category=&featured=&min_price=&max_price=
func ListProducts(products store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter store.ProductFilter
		filter.Category = c.Query("category")

		if v := c.Query("featured"); v != "" {
			featured, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid featured value"})
				return
			}
			filter.Featured = &featured
		}
		if v := c.Query("min_price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price value"})
				return
			}
			filter.MinPrice = &price
		}
		if v := c.Query("max_price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price value"})
				return
			}
			filter.MaxPrice = &price
		}

		list, err := products.List(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /products/:id
func GetProduct(products store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /products (admin)
func CreateProduct(products store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Images:      input.Images,
			Category:    input.Category,
			Sizes:       input.Sizes,
			Colors:      input.Colors,
			Stock:       input.Stock,
			Featured:    input.Featured,
			CreatedAt:   time.Now().UTC(),
		}
		if err := products.Create(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
