// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"truecraft/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler   *handler.ProductHandler
	ProfileHandler   *handler.ProfileHandler
	ReviewHandler    *handler.ReviewHandler
	MessageHandler   *handler.MessageHandler
	OrderHandler     *handler.OrderHandler
	AnalyticsHandler *handler.AnalyticsHandler
	AuthHandler      *handler.AuthHandler
	StatusHandler    *handler.StatusHandler
	StudioHandler    *handler.StudioHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	products  *handler.ProductHandler
	profiles  *handler.ProfileHandler
	reviews   *handler.ReviewHandler
	messages  *handler.MessageHandler
	orders    *handler.OrderHandler
	analytics *handler.AnalyticsHandler
	auth      *handler.AuthHandler
	status    *handler.StatusHandler
	studio    *handler.StudioHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		products:  params.ProductHandler,
		profiles:  params.ProfileHandler,
		reviews:   params.ReviewHandler,
		messages:  params.MessageHandler,
		orders:    params.OrderHandler,
		analytics: params.AnalyticsHandler,
		auth:      params.AuthHandler,
		status:    params.StatusHandler,
		studio:    params.StudioHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Storage status and on-demand connectivity probe
	e.GET("/status", r.status.Status)
	e.POST("/status/test-connection", r.status.TestConnection)

	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.products.List)
		productGroup.POST("", r.products.Create)
		productGroup.PATCH("/:id", r.products.Update)
		productGroup.DELETE("/:id", r.products.Delete)
		productGroup.POST("/:id/views", r.products.IncrementViews)
		productGroup.POST("/:id/favorites", r.products.IncrementFavorites)

		// Reviews live under their product
		productGroup.POST("/:id/reviews", r.reviews.Create)
		productGroup.GET("/:id/reviews", r.reviews.List)
		productGroup.GET("/:id/rating", r.reviews.Rating)
	}

	profileGroup := e.Group("/profiles")
	{
		profileGroup.GET("", r.profiles.List)
		profileGroup.POST("", r.profiles.Create)
		profileGroup.PATCH("/:id", r.profiles.Update)
	}

	messageGroup := e.Group("/messages")
	{
		messageGroup.POST("", r.messages.Send)
		messageGroup.GET("/unread", r.messages.UnreadCount)
		messageGroup.GET("/conversations", r.messages.Conversations)
		messageGroup.POST("/conversations/read", r.messages.MarkRead)
		messageGroup.GET("/thread", r.messages.Thread)
	}

	orderGroup := e.Group("/orders")
	{
		orderGroup.POST("", r.orders.Create)
		orderGroup.GET("", r.orders.List)
	}

	analyticsGroup := e.Group("/analytics")
	{
		analyticsGroup.POST("/events", r.analytics.LogEvent)
		analyticsGroup.GET("/summary", r.analytics.Summary)
	}

	authGroup := e.Group("/auth")
	{
		authGroup.GET("/google/login", r.auth.Login)
		authGroup.GET("/google/callback", r.auth.Callback)
		authGroup.GET("/me", r.auth.Me)
	}

	studioGroup := e.Group("/studio")
	{
		studioGroup.POST("/generate", r.studio.Generate)
		studioGroup.POST("/images", r.studio.ProcessImage)
		studioGroup.POST("/images/thumbnail", r.studio.Thumbnail)
	}
}
