package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Gladiator Burger ordering API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

MENU
- GET "/menu" - List menu items
- GET "/menu/{itemId}" - Get menu item by ID
- POST "/menu" - Create menu item (admin)
- POST "/menu/{itemId}/image" - Upload menu item image (admin)

CART
- GET "/cart" - Get the account cart
- POST "/cart/items" - Add an item to the cart
- PATCH "/cart/items/{itemId}" - Update an item's quantity
- DELETE "/cart/items/{itemId}" - Remove an item
- DELETE "/cart" - Clear the cart
- POST "/cart/merge" - Merge a guest cart after login
- POST "/cart/quote" - Quote subtotal/discount/total

CHECKOUT
- GET "/payments/config" - Card widget bootstrap config
- POST "/payments" - Charge a payment token and record the order
- GET "/orders/receipt/{receiptToken}" - Receipt lookup by token
- GET "/orders/{orderId}" - Order lookup by ID (admin)
- POST "/send-receipt" - Email a receipt`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
