package api

import (
	v1 "github.com/flexprice/azpay/internal/api/v1"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Gateway  *v1.GatewayHandler
	Callback *v1.CallbackHandler
}

func NewRouter(handlers Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(log),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	gateways := router.Group("/gateways")
	{
		gateways.GET("", handlers.Gateway.ListGateways)
		gateways.POST("/:gateway/:operation", handlers.Gateway.Invoke)
		gateways.POST("/:gateway/:operation/form", handlers.Gateway.RenderForm)
	}

	callbacks := router.Group("/callbacks")
	{
		callbacks.POST("/:gateway", handlers.Callback.HandleCallback)
	}
}
