package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jungle-swimwear/ecommerce-api/metrics"
	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

// ErrEmptyCart rejects order creation from a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// Service converts carts into immutable order snapshots.
type Service struct {
	Carts    store.Carts
	Products store.Products
	Orders   store.Orders
	Feed     *Feed
}

// Create snapshots the user's cart into an order at current catalog prices.
// Cart lines whose product no longer exists are dropped rather than failing
// the order; the count of dropped lines is returned for the response. The
// cart itself is left untouched: it is only cleared once payment is
// confirmed, so a user may create several orders from the same cart.
func (s *Service) Create(ctx context.Context, userID string, addr models.ShippingAddress) (*models.Order, int, error) {
	cart, err := s.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(cart.Items) == 0 {
		return nil, 0, ErrEmptyCart
	}

	var items []models.OrderItem
	var total float64
	dropped := 0

	for _, line := range cart.Items {
		product, err := s.Products.FindByID(ctx, line.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			dropped++
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        line.Size,
			Color:       line.Color,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}
	if len(items) == 0 {
		return nil, dropped, ErrEmptyCart
	}

	order := models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: addr,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusProcessing,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Orders.Create(ctx, &order); err != nil {
		return nil, dropped, err
	}

	metrics.OrdersCreated.Inc()
	s.Feed.Broadcast(FeedEvent{Type: "order_created", Order: &order})
	return &order, dropped, nil
}

// POST /orders
func (s *Service) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var addr models.ShippingAddress
		if err := c.ShouldBindJSON(&addr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping address: " + err.Error()})
			return
		}

		order, dropped, err := s.Create(c.Request.Context(), userID, addr)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"order": order, "dropped_lines": dropped})
	}
}

// GET /orders
func (s *Service) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orders, err := s.Orders.ListForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func (s *Service) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		order, err := s.Orders.FindForUser(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func (s *Service) AdminListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.Orders.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
