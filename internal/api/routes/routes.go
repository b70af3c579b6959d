package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/bikeparts/internal/api/handlers"
	"github.com/yoockh/bikeparts/internal/api/middleware"
)

type Deps struct {
	Tokens middleware.TokenVerifier
	Admins middleware.AdminResolver

	User    *handlers.UserHandler
	Product *handlers.ProductHandler
	Order   *handlers.OrderHandler
	Review  *handlers.ReviewHandler
	Audit   *handlers.AuditHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	authed := middleware.JWTAuth(d.Tokens)
	admin := middleware.RequireAdmin(d.Admins)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "hello from bike-parts-manufacturer server",
		})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Users
	r.PUT("/login/:email", d.User.Login)
	r.PUT("/users/:email", authed, middleware.RequireOwner("email"), d.User.Update)
	r.PUT("/users/admin/:email", authed, admin, d.User.SetRole)
	r.GET("/admin/:email", authed, d.User.IsAdmin)
	r.GET("/users", authed, d.User.List)
	r.GET("/users/:email", authed, d.User.Get)

	// Products
	r.GET("/products", d.Product.List)
	r.GET("/products/:id", d.Product.Get)
	r.POST("/products", authed, admin, d.Product.Create)
	r.PUT("/products/:id", authed, admin, d.Product.Update)
	r.DELETE("/products/:id", authed, admin, d.Product.Delete)
	r.POST("/products/:id/image", authed, admin, d.Product.UploadImage)

	// Orders
	r.POST("/orders", authed, d.Order.Create)
	r.GET("/orders", authed, admin, d.Order.List)
	r.GET("/orders/:key", authed, d.Order.GetByKey)
	r.PUT("/orders/:id", authed, d.Order.Update)
	r.DELETE("/orders/:id", authed, d.Order.Delete)

	// Reviews
	r.GET("/reviews", d.Review.List)
	r.POST("/reviews", authed, d.Review.Create)
	r.POST("/reviews/:addedBy", authed, middleware.RequireOwner("addedBy"), d.Review.Create)

	// Audit log of admin mutations
	r.GET("/audit/:email", authed, admin, d.Audit.ListByActor)
}
