package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rationshop/backend/internal/interfaces/http/handler"
)

// Handlers are the endpoints of the shop API
type Handlers struct {
	Orders      *handler.OrderHandler
	Carts       *handler.CartHandler
	Products    *handler.ProductHandler
	Regions     *handler.RegionHandler
	GlobalLimit *handler.GlobalLimitHandler
	Usage       *handler.UsageHandler
	System      *handler.SystemHandler
}

// Guards are the per-route middleware. Auth is required; the others may be nil.
type Guards struct {
	// Auth validates the bearer token
	Auth gin.HandlerFunc
	// Admin rejects non-admin callers, after Auth
	Admin gin.HandlerFunc
	// RateLimit throttles authenticated callers by user id
	RateLimit gin.HandlerFunc
	// Annotate tags the request span with caller identity
	Annotate gin.HandlerFunc
	// Idempotency guards order creation
	Idempotency gin.HandlerFunc
}

// ShopGroups builds the route groups of the shop API
func ShopGroups(h Handlers, g Guards) []RouteRegistrar {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)

	orders := NewDomainGroup("orders", "/orders").Use(g.Auth, g.Annotate, g.RateLimit)
	orders.POST("", g.Idempotency, h.Orders.Create)
	orders.GET("", h.Orders.List)
	orders.GET("/:id", h.Orders.GetByID)
	orders.DELETE("/:id", h.Orders.Delete)

	carts := NewDomainGroup("carts", "/carts").Use(g.Auth, g.Annotate, g.RateLimit)
	carts.POST("", h.Carts.Create)
	carts.GET("", h.Carts.List)
	carts.GET("/:id", h.Carts.GetByID)
	carts.DELETE("/:id", h.Carts.Delete)

	products := NewDomainGroup("products", "/products").Use(g.Auth, g.Annotate, g.RateLimit)
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.GetByID)

	admin := NewDomainGroup("admin", "/admin").Use(g.Auth, g.Admin, g.Annotate, g.RateLimit)
	adminProducts := admin.Group("products", "/products")
	adminProducts.POST("", h.Products.Create)
	adminProducts.DELETE("/:id", h.Products.Delete)

	regions := admin.Group("regions", "/regions")
	regions.GET("", h.Regions.List)
	regions.POST("", h.Regions.Create)
	regions.GET("/:id", h.Regions.GetByID)
	regions.PUT("/:id", h.Regions.Update)
	regions.DELETE("/:id", h.Regions.Delete)

	admin.Group("global-limit", "/global-limit").
		GET("", h.GlobalLimit.Get).
		PUT("", h.GlobalLimit.Set)

	admin.Group("usage", "/usage").GET("/today", h.Usage.Today)

	return []RouteRegistrar{system, orders, carts, products, admin}
}
