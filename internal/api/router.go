package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"airrental-backend/config"
	"airrental-backend/internal/model"
	"airrental-backend/internal/mw"
	"airrental-backend/internal/simulator"
	"airrental-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, sim *simulator.Simulator) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, sim)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	auth := mw.Auth(cfg.Auth.JWTSecret)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Catalog: static reference data, cached, open to any authenticated user.
		api.GET("/device-types", auth, caching, handler.GetDeviceTypes)

		customer := api.Group("", auth, mw.RequireRole(model.RoleCustomer))
		{
			customer.GET("/rooms", handler.ListRooms)
			customer.POST("/rooms", handler.CreateRoom)
			customer.GET("/rooms/:id", handler.GetRoom)
			customer.PATCH("/rooms/:id", handler.UpdateRoom)
			customer.DELETE("/rooms/:id", handler.DeleteRoom)

			customer.GET("/orders", handler.ListOrders)
			customer.POST("/orders", handler.CreateOrder)
			customer.GET("/orders/:id/cost", handler.GetOrderCost)
			customer.POST("/orders/:id/pay", handler.PayOrder)

			customer.GET("/devices", handler.ListDevices)
			customer.PATCH("/devices/:id/toggle", handler.ToggleDevice)
			customer.GET("/devices/:id/metrics", handler.GetDeviceMetrics)

			customer.GET("/payment-cards", handler.ListCards)
			customer.POST("/payment-cards", handler.CreateCard)
			customer.GET("/payment-cards/:id", handler.GetCard)
			customer.PATCH("/payment-cards/:id", handler.UpdateCard)
			customer.DELETE("/payment-cards/:id", handler.DeleteCard)

			customer.GET("/payments", handler.ListPayments)

			customer.GET("/subscriptions", handler.ListSubscriptions)
			customer.POST("/subscriptions/:id/cancel", handler.CancelSubscription)
		}

		investor := api.Group("/investor", auth, mw.RequireRole(model.RoleInvestor))
		{
			investor.GET("/dashboard", handler.InvestorDashboard)
			investor.GET("/devices", handler.ListAvailableDevices)
			investor.GET("/investments", handler.ListInvestments)
			investor.POST("/investments", handler.CreateInvestment)
			investor.POST("/investments/:id/confirm", handler.ConfirmInvestment)
		}

		admin := api.Group("/admin", auth, mw.RequireRole(model.RoleAdmin))
		{
			admin.POST("/devices", handler.AdminCreateDevice)
			admin.PATCH("/devices/:id", handler.AdminUpdateDevice)
			admin.PATCH("/devices/:id/status", handler.AdminSetDeviceStatus)
			admin.PATCH("/orders/:id/status", handler.AdminSetOrderStatus)
		}
	}

	// Service-to-service surface, guarded by the shared internal token.
	internal := r.Group("/internal", mw.InternalAuth(cfg.Auth.InternalToken))
	{
		internal.POST("/metrics", handler.IngestMetric)
	}

	return r
}
