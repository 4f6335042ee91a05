// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hail/internal/http/handlers"
	"hail/internal/http/middleware"
	"hail/internal/modules/order"
)

func NewRouter(orderService *order.Service, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Recovery(log))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	orderHandler := handlers.NewOrderHandler(orderService)
	v1 := r.Group("/v1")
	v1.POST("/orders", orderHandler.Create)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.PUT("/orders/:id/take", orderHandler.Take)
	v1.PUT("/orders/:id/complete", orderHandler.Complete)
	v1.PUT("/orders/:id/cancel", orderHandler.Cancel)

	return r
}
