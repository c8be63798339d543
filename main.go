package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	orderControllers "github.com/jungle-swimwear/ecommerce-api/controllers/order"
	paymentControllers "github.com/jungle-swimwear/ecommerce-api/controllers/payment"
	"github.com/jungle-swimwear/ecommerce-api/payments"
	"github.com/jungle-swimwear/ecommerce-api/routes"
	"github.com/jungle-swimwear/ecommerce-api/seed"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

func main() {
	log.Println("Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	db, err := store.Open(databaseDSN())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	if os.Getenv("SEED_ON_START") == "true" {
		if err := seed.Products(context.Background(), db.Products); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	provider := payments.NewStripe(os.Getenv("STRIPE_API_KEY"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	feed := orderControllers.NewFeed()

	app := &routes.App{
		Store: db,
		Feed:  feed,
		Orders: &orderControllers.Service{
			Carts:    db.Carts,
			Products: db.Products,
			Orders:   db.Orders,
			Feed:     feed,
		},
		Payments: &paymentControllers.Service{
			Orders:       db.Orders,
			Transactions: db.Transactions,
			Users:        db.Users,
			Provider:     provider,
			Feed:         feed,
		},
	}

	// Repair confirmations interrupted by a crash between writes.
	go reconcilePayments(app.Payments)

	// Gin setup
	r := gin.Default()

	// CORS settings
	allowedOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, app)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// reconcilePayments periodically finishes payment confirmations that were
// interrupted between the ledger write and the order/cart writes.
func reconcilePayments(svc *paymentControllers.Service) {
	for {
		if n, err := svc.Reconcile(context.Background()); err != nil {
			log.Printf("Payment reconciliation failed: %v", err)
		} else if n > 0 {
			log.Printf("Reconciled %d interrupted payment(s)", n)
		}
		time.Sleep(time.Minute)
	}
}

// databaseDSN builds the Postgres DSN from DATABASE_URL or discrete vars.
func databaseDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}
