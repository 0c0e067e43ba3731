package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/controllers"
	"github.com/gladiator-burger/ordering-api/middlewares"
)

func MenuRoutes(server *gin.Engine, menuController *controllers.MenuController, jwtSecret string) {
	server.GET("/menu", menuController.GetMenu)
	server.GET("/menu/:itemId", menuController.GetMenuItem)

	admin := server.Group("/menu", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin())
	{
		admin.POST("", menuController.CreateMenuItem)
		admin.POST("/:itemId/image", menuController.UploadMenuItemImage)
	}
}
