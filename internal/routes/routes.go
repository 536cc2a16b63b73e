package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veriauth/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	productHandler *handlers.ProductHandler,
) *gin.Engine {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "welcome to the account verification service"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.GET("/verify/:token", authHandler.Verify)
		auth.POST("/login", authHandler.Login)
	}

	products := r.Group("/api/products")
	{
		products.POST("", productHandler.Upload)
		products.DELETE("/:id", productHandler.Delete)
	}

	return r
}
