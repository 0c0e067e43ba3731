package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/controllers"
	"github.com/gladiator-burger/ordering-api/middlewares"
)

func CartRoutes(server *gin.Engine, cartController *controllers.CartController, jwtSecret string) {
	group := server.Group("/cart", middlewares.RequireAuth(jwtSecret))
	{
		group.GET("", cartController.GetCart)
		group.DELETE("", cartController.ClearCart)
		group.POST("/items", cartController.AddCartItem)
		group.PATCH("/items/:itemId", cartController.UpdateCartItem)
		group.DELETE("/items/:itemId", cartController.RemoveCartItem)
		group.POST("/merge", cartController.MergeCart)
		group.POST("/quote", cartController.Quote)
	}
}
