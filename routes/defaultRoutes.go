package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
