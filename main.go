package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/config"
	"github.com/gladiator-burger/ordering-api/controllers"
	"github.com/gladiator-burger/ordering-api/database"
	"github.com/gladiator-burger/ordering-api/orders"
	"github.com/gladiator-burger/ordering-api/payment"
	"github.com/gladiator-burger/ordering-api/routes"
	"github.com/gladiator-burger/ordering-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	paymentClient := payment.NewClient(payment.Config{
		AccessToken: cfg.SquareAccessToken,
		AppID:       cfg.SquareAppID,
		LocationID:  cfg.SquareLocationID,
		BaseURL:     cfg.SquareBaseURL,
		Currency:    cfg.Currency,
	})
	if err := paymentClient.Initialize(context.Background()); err != nil {
		log.Fatalf("Payment provider error: %v", err)
	}
	defer paymentClient.Close()

	orderStore := orders.NewGormStore(db)
	submission := orders.NewSubmissionService(paymentClient, orderStore)
	receipts := orders.NewReceiptService(orderStore, cfg.TaxRate)

	mailer := utils.NewMailer(utils.SMTPConfig{
		FromEmail: cfg.FromEmail,
		Password:  cfg.FromEmailPassword,
		Host:      cfg.FromEmailSMTP,
		Address:   cfg.SMTPAddress,
	})
	receiptMailer := utils.NewReceiptMailer(mailer, "templates/receipt_email.html")

	orderController := controllers.NewOrderController(submission, receipts, receiptMailer, paymentClient.WidgetConfig())
	cartController := controllers.NewCartController(db, cfg.TaxRate)
	menuController := controllers.NewMenuController(db, cfg.ImageBucket)
	authController := controllers.NewAuthController(db, cfg.JWTSecret)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://www.gladiatorburger.ca"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, authController)
	routes.MenuRoutes(server, menuController, cfg.JWTSecret)
	routes.CartRoutes(server, cartController, cfg.JWTSecret)
	routes.OrderRoutes(server, orderController, cfg.JWTSecret)

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
