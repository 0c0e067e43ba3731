package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/controllers"
)

func AuthRoutes(server *gin.Engine, authController *controllers.AuthController) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}
}
