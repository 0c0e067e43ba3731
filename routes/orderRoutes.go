package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/controllers"
	"github.com/gladiator-burger/ordering-api/middlewares"
)

func OrderRoutes(server *gin.Engine, orderController *controllers.OrderController, jwtSecret string) {
	server.POST("/payments", orderController.CreatePayment)
	server.GET("/payments/config", orderController.GetPaymentConfig)

	// Consumer receipt lookup is by opaque token only; the internal
	// order-id path requires an admin token.
	server.GET("/orders/receipt/:receiptToken", orderController.GetOrderByReceiptToken)
	server.GET("/orders/:orderId", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin(), orderController.GetOrderByID)

	server.POST("/send-receipt", orderController.SendReceipt)
}
